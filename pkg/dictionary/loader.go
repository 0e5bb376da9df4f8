package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// maxRank is the largest rank a chunk entry can carry.
const maxRank = 65535

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// rankToWeight converts a 1-based rank into a weight (rank 1 = 65535).
func rankToWeight(rank int) int {
	w := maxRank - rank + 1
	if w < 1 {
		w = 1
	}
	return w
}

// weightToRank is the inverse of rankToWeight, clamped to the uint16 range.
func weightToRank(weight int) uint16 {
	r := maxRank - weight + 1
	if r < 1 {
		r = 1
	}
	if r > maxRank {
		r = maxRank
	}
	return uint16(r)
}

// Load reads a vocabulary from path. Directories are scanned for chunk files,
// regular files are dispatched on their detected format.
func Load(path string, opts Options) (Vocabulary, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat vocabulary %s: %w", path, err)
	}
	if stat.IsDir() {
		return LoadChunkDir(path, opts)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatText:
		return LoadText(path, opts)
	case FormatChunk:
		entries, err := LoadChunk(path)
		if err != nil {
			return nil, err
		}
		return Merge(entries, opts), nil
	case FormatSQLite:
		return LoadSQLiteFile(path, DefaultTable, opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// LoadText reads a plain text vocabulary file.
func LoadText(path string, opts Options) (Vocabulary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary %s: %w", path, err)
	}
	defer file.Close()

	vocab, err := ParseText(file, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary %s: %w", path, err)
	}
	log.Debugf("Loaded %d words from %s", vocab.Len(), path)
	return vocab, nil
}

// ParseText parses "word weight" lines. Blank lines and lines starting with '#'
// are skipped. A line without a weight is weighted by its rank in the file, so
// plain frequency-ordered word lists keep their order.
func ParseText(r io.Reader, opts Options) (Vocabulary, error) {
	scanner := bufio.NewScanner(r)
	var entries []WeightedString
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		word := fields[0]
		weight := rankToWeight(len(entries) + 1)
		if len(fields) > 1 {
			w, err := strconv.Atoi(fields[len(fields)-1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid weight %q: %w", lineNo, fields[len(fields)-1], err)
			}
			weight = w
		}
		entries = append(entries, WeightedString{Text: word, Weight: weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return Merge(entries, opts), nil
}

// LoadChunk reads a single chunk file.
// Layout: int32 word count, then per word uint16 length, the word bytes and a uint16 rank.
func LoadChunk(filename string) ([]WeightedString, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	entries, err := ReadChunk(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", filename, err)
	}
	log.Debugf("Chunk %s loaded: %d words", filename, len(entries))
	return entries, nil
}

// ReadChunk decodes chunk-formatted entries from r.
func ReadChunk(r io.Reader) ([]WeightedString, error) {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return nil, fmt.Errorf("invalid chunk word count %d", totalEntries)
	}

	entries := make([]WeightedString, 0, totalEntries)
	for len(entries) < int(totalEntries) {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}

		entries = append(entries, WeightedString{
			Text:   string(wordBytes),
			Weight: rankToWeight(int(rank)),
		})
	}
	return entries, nil
}

// WriteChunk encodes entries in chunk format. Weights outside the rank range are clamped.
func WriteChunk(w io.Writer, entries []WeightedString) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if len(e.Text) > maxRank {
			return fmt.Errorf("word too long for chunk format: %d bytes", len(e.Text))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(e.Text))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, e.Text); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, weightToRank(e.Weight)); err != nil {
			return err
		}
	}
	return nil
}

// AvailableChunks scans dirPath for dict_*.bin files, sorted by chunk id.
func AvailableChunks(dirPath string) ([]ChunkInfo, error) {
	pattern := filepath.Join(dirPath, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{
			ChunkID:   chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadChunkDir loads chunks in id order until opts.MaxWords is reached.
func LoadChunkDir(dirPath string, opts Options) (Vocabulary, error) {
	chunks, err := AvailableChunks(dirPath)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", dirPath)
	}

	var entries []WeightedString
	for _, chunk := range chunks {
		if opts.MaxWords > 0 && len(entries) >= opts.MaxWords {
			break
		}
		words, err := LoadChunk(chunk.Filename)
		if err != nil {
			log.Warnf("Failed to load chunk %d: %v", chunk.ChunkID, err)
			continue
		}
		entries = append(entries, words...)
	}

	log.Debugf("Loaded %d chunk entries from %s", len(entries), dirPath)
	return Merge(entries, opts), nil
}
