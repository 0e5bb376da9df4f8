package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordkey/internal/logger"
	"github.com/bastiangx/wordkey/pkg/config"
	"github.com/bastiangx/wordkey/pkg/cursor"
	"github.com/bastiangx/wordkey/pkg/language"
	"github.com/bastiangx/wordkey/pkg/session"
	"github.com/bastiangx/wordkey/pkg/shift"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/vmihailenco/msgpack/v5"
)

const reloadDebounce = 100 * time.Millisecond

// Server handles the IPC between a host text field and one input session.
// Requests are processed strictly in order on the Serve goroutine.
type Server struct {
	session    *session.Session
	doc        *session.Buffer
	presenter  *labelTracker
	config     *config.Config
	configPath string

	in     io.Reader
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
	writer *bufio.Writer
	logger *log.Logger

	requests int
}

// labelTracker remembers whether the key labels changed since the last reply.
type labelTracker struct {
	labels session.KeyLabels
	dirty  bool
}

func (t *labelTracker) RenderSuggestions([]string)  {}
func (t *labelTracker) RenderCaseChange(shift.Mode) {}
func (t *labelTracker) RenderActiveLanguage(string) {}

func (t *labelTracker) RenderKeyLabels(labels session.KeyLabels) {
	t.labels = labels
	t.dirty = true
}

func (t *labelTracker) take() *KeyLabels {
	if !t.dirty {
		return nil
	}
	t.dirty = false
	return &KeyLabels{
		Primary:   t.labels.Primary,
		Secondary: t.labels.Secondary,
		Tertiary:  t.labels.Tertiary,
	}
}

// NewServer creates a server on stdin/stdout. configPath may be empty, in
// which case the config is never reloaded.
func NewServer(cycle *language.Cycle, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(cycle, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing
// responses to w.
func NewServerWithIO(cycle *language.Cycle, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	doc := session.NewBuffer("")
	tracker := &labelTracker{}
	writer := bufio.NewWriter(w)

	return &Server{
		session:    session.New(doc, tracker, cycle, cfg.SessionSettings()),
		doc:        doc,
		presenter:  tracker,
		config:     cfg,
		configPath: configPath,
		in:         r,
		dec:        msgpack.NewDecoder(bufio.NewReader(r)),
		enc:        msgpack.NewEncoder(writer),
		writer:     writer,
		logger:     logger.New("server"),
	}
}

// Start serves until stdin is closed.
func (s *Server) Start() error {
	return s.Serve(context.Background())
}

// Serve handles requests until the input ends, ctx is cancelled or the
// stream becomes undecodable. A clean end of input returns nil.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debug("Starting server")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	requests := make(chan Request)
	readErr := make(chan error, 1)
	go s.readLoop(ctx, requests, readErr)

	var fsEvents <-chan fsnotify.Event
	var fsErrors <-chan error
	if s.config.Server.WatchConfig && s.configPath != "" {
		watcher, err := s.watchConfig()
		if err != nil {
			s.logger.Warnf("Config hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			fsEvents, fsErrors = watcher.Events, watcher.Errors
		}
	}

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			// unblocks readLoop when the input can be closed; otherwise it
			// lingers in Decode until the input yields or ends
			if c, ok := s.in.(io.Closer); ok {
				c.Close()
			}
			return ctx.Err()

		case req, ok := <-requests:
			if !ok {
				return <-readErr
			}
			s.handleRequest(req)

		case ev, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}
			if filepath.Base(ev.Name) != filepath.Base(s.configPath) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			reload = time.After(reloadDebounce)

		case <-reload:
			reload = nil
			s.reloadConfig()

		case err, ok := <-fsErrors:
			if !ok {
				fsErrors = nil
				continue
			}
			s.logger.Warnf("Config watcher: %v", err)
		}
	}
}

func (s *Server) readLoop(ctx context.Context, requests chan<- Request, readErr chan<- error) {
	defer close(requests)
	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				readErr <- nil
			} else {
				s.logger.Errorf("Decoding request: %v", err)
				readErr <- err
			}
			return
		}
		select {
		case requests <- req:
		case <-ctx.Done():
			readErr <- ctx.Err()
			return
		}
	}
}

// watchConfig watches the directory of the config file; editors often
// replace the file instead of writing it in place.
func (s *Server) watchConfig() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(s.configPath)); err != nil {
		watcher.Close()
		return nil, err
	}
	s.logger.Debugf("Watching %s for changes", s.configPath)
	return watcher, nil
}

func (s *Server) reloadConfig() {
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		s.logger.Warnf("Failed to reload config: %v", err)
		return
	}
	if !sameLanguages(cfg.Keyboard.Languages, s.config.Keyboard.Languages) {
		s.logger.Warnf("Language list changed to %v, restart to apply", cfg.Keyboard.Languages)
		cfg.Keyboard.Languages = s.config.Keyboard.Languages
	}
	s.config = cfg
	s.session.ApplySettings(cfg.SessionSettings())
	s.logger.Info("Config reloaded", "limit", cfg.Suggest.Limit, "fold_case", cfg.Suggest.FoldCase)
}

func sameLanguages(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// handleRequest runs one event through the session and replies.
func (s *Server) handleRequest(req Request) {
	start := time.Now()
	s.requests++

	if req.Before != nil {
		s.doc.Reset(cursor.Tail(*req.Before, s.config.Server.MaxContext))
		s.session.Refresh()
	}

	var intents []session.EditIntent
	var repeatMs int
	if req.Event == "hello" {
		repeatMs = s.config.Keyboard.RepeatIntervalMs
		s.session.Activate()
		s.presenter.labels = s.session.Labels()
		s.presenter.dirty = true
	} else {
		ev, err := ParseEvent(req)
		if err != nil {
			s.logger.Debugf("Rejecting request %s: %v", req.ID, err)
			s.sendError(req.ID, err.Error(), 400)
			return
		}
		intents = s.session.Handle(ev)
	}

	s.send(Response{
		ID:          req.ID,
		Ops:         toOps(intents),
		Suggestions: s.session.Suggestions(),
		Shift:       s.session.Shift().String(),
		Language:    s.session.Language().Name,
		Labels:      s.presenter.take(),
		RepeatMs:    repeatMs,
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) send(v any) {
	if err := s.enc.Encode(v); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

// Requests returns the number of requests handled.
func (s *Server) Requests() int {
	return s.requests
}
