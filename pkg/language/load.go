package language

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/wordkey/pkg/dictionary"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.toml profiles/*.txt
var builtinFS embed.FS

// profileFile is the on-disk layout shared by TOML and YAML profiles.
type profileFile struct {
	ID                  string         `toml:"id" yaml:"id"`
	Name                string         `toml:"name" yaml:"name"`
	Locale              string         `toml:"locale" yaml:"locale"`
	Vocabulary          string         `toml:"vocabulary" yaml:"vocabulary"`
	Words               map[string]int `toml:"words" yaml:"words"`
	AutoCapitalizeAfter []string       `toml:"auto_capitalize_after" yaml:"auto_capitalize_after"`
	Secondary           [][]string     `toml:"secondary" yaml:"secondary"`
	Tertiary            [][]string     `toml:"tertiary" yaml:"tertiary"`
}

// BuiltinIDs lists the profiles compiled into the binary.
func BuiltinIDs() []string {
	entries, err := fs.Glob(builtinFS, "profiles/*.toml")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(filepath.Base(e), ".toml"))
	}
	sort.Strings(ids)
	return ids
}

// Builtin loads a profile compiled into the binary.
func Builtin(id string, opts dictionary.Options) (*Profile, error) {
	data, err := builtinFS.ReadFile("profiles/" + id + ".toml")
	if err != nil {
		return nil, fmt.Errorf("no built-in profile %q", id)
	}
	var pf profileFile
	if _, err := toml.Decode(string(data), &pf); err != nil {
		return nil, fmt.Errorf("failed to decode built-in profile %q: %w", id, err)
	}

	var entries []dictionary.WeightedString
	if pf.Vocabulary != "" {
		raw, err := builtinFS.ReadFile("profiles/" + pf.Vocabulary)
		if err != nil {
			return nil, fmt.Errorf("built-in profile %q: missing vocabulary %s", id, pf.Vocabulary)
		}
		vocab, err := dictionary.ParseText(bytes.NewReader(raw), dictionary.Options{})
		if err != nil {
			return nil, fmt.Errorf("built-in profile %q: %w", id, err)
		}
		entries = vocab
	}
	return pf.build(id, entries, opts)
}

// LoadProfileFile reads a .toml, .yaml or .yml profile. A vocabulary path
// inside the file is resolved relative to the profile's directory.
func LoadProfileFile(path string, opts dictionary.Options) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var pf profileFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &pf); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported profile extension %q", ext)
	}

	var entries []dictionary.WeightedString
	if pf.Vocabulary != "" {
		vocabPath := pf.Vocabulary
		if !filepath.IsAbs(vocabPath) {
			vocabPath = filepath.Join(filepath.Dir(path), vocabPath)
		}
		vocab, err := dictionary.Load(vocabPath, dictionary.Options{})
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", path, err)
		}
		entries = vocab
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return pf.build(id, entries, opts)
}

// LoadProfiles resolves ids in order. A profile file named <id>.toml,
// <id>.yaml or <id>.yml in dir takes precedence over the built-in one.
func LoadProfiles(ids []string, dir string, opts dictionary.Options) ([]*Profile, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyCycle
	}
	profiles := make([]*Profile, 0, len(ids))
	for _, id := range ids {
		p, err := loadOne(id, dir, opts)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func loadOne(id, dir string, opts dictionary.Options) (*Profile, error) {
	if dir != "" {
		for _, ext := range []string{".toml", ".yaml", ".yml"} {
			path := filepath.Join(dir, id+ext)
			if _, err := os.Stat(path); err == nil {
				log.Debugf("Loading profile %s from %s", id, path)
				return LoadProfileFile(path, opts)
			}
		}
	}
	return Builtin(id, opts)
}

func (pf *profileFile) build(fallbackID string, entries []dictionary.WeightedString, opts dictionary.Options) (*Profile, error) {
	words := make([]string, 0, len(pf.Words))
	for word := range pf.Words {
		words = append(words, word)
	}
	sort.Strings(words)
	for _, word := range words {
		entries = append(entries, dictionary.WeightedString{Text: word, Weight: pf.Words[word]})
	}

	id := pf.ID
	if id == "" {
		id = fallbackID
	}
	locale := pf.Locale
	if locale == "" {
		locale = "und"
	}

	p := &Profile{
		ID:                  id,
		Name:                pf.Name,
		Locale:              locale,
		Secondary:           Grid(pf.Secondary),
		Tertiary:            Grid(pf.Tertiary),
		Vocabulary:          dictionary.Merge(entries, opts),
		AutoCapitalizeAfter: NewSuffixSet(pf.AutoCapitalizeAfter...),
	}
	if err := p.Validate(PrimaryGrid); err != nil {
		return nil, err
	}
	log.Debugf("Profile %s (%s): %d words, %d capitalization triggers",
		p.ID, p.Name, p.Vocabulary.Len(), p.AutoCapitalizeAfter.Len())
	return p, nil
}
