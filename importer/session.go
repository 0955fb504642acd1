package importer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/caseframe/host"
)

// MessageType names a UI → core message.
type MessageType string

const (
	MessageImport MessageType = "import"
	// MessageImportLegacy is the older name of MessageImport.
	MessageImportLegacy MessageType = "import-case-study"
	MessageCancel       MessageType = "cancel"
)

// ErrUnknownMessage is returned by Handle for unsupported message types.
var ErrUnknownMessage = errors.New("unknown message type")

// Message is one envelope from the UI.
type Message struct {
	Type MessageType `json:"type"`
	// Data is the serialized block array of an import message.
	Data string `json:"data,omitempty"`
}

// DecodeMessage parses an envelope. A data field holding a JSON array
// instead of a string is accepted as its raw text.
func DecodeMessage(raw []byte) (Message, error) {
	var env struct {
		Type MessageType     `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	msg := Message{Type: env.Type}
	data := bytes.TrimSpace(env.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
	case data[0] == '"':
		if err := json.Unmarshal(data, &msg.Data); err != nil {
			return Message{}, fmt.Errorf("decode message data: %w", err)
		}
	default:
		msg.Data = string(data)
	}
	return msg, nil
}

// DefaultUI is the panel shown at startup.
var DefaultUI = host.UIOptions{Width: 500, Height: 600, ThemeColors: true}

// Session routes UI messages to an Importer. Imports run one at a time;
// cancel does not wait for a running import.
type Session struct {
	host     host.Host
	importer *Importer
	ui       host.UIOptions
	logger   *log.Logger

	importMu sync.Mutex
	mu       sync.Mutex
	started  bool
	closed   bool
}

// NewSession creates a session showing ui (DefaultUI when zero).
func NewSession(h host.Host, ui host.UIOptions, opts Options) *Session {
	if ui == (host.UIOptions{}) {
		ui = DefaultUI
	}
	imp := New(h, opts)
	return &Session{host: h, importer: imp, ui: ui, logger: imp.logger}
}

// Start shows the UI once.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if err := s.host.ShowUI(ctx, s.ui); err != nil {
		return fmt.Errorf("show ui: %w", err)
	}
	s.started = true
	return nil
}

// Closed reports whether a cancel message has been handled.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Handle processes msg. Import messages return their outcome; cancel
// returns a nil outcome.
func (s *Session) Handle(ctx context.Context, msg Message) (*Outcome, error) {
	switch msg.Type {
	case MessageImport, MessageImportLegacy:
		s.importMu.Lock()
		defer s.importMu.Unlock()
		return s.importer.Import(ctx, msg.Data), nil
	case MessageCancel:
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		if err := s.host.Close(ctx); err != nil {
			return nil, fmt.Errorf("close ui: %w", err)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}

// maxMessageSize bounds one newline-delimited message.
const maxMessageSize = 16 << 20

// Serve reads newline-delimited messages from r until cancel, EOF or ctx
// is done. Undecodable lines are logged and skipped. onOutcome, when set,
// receives each import outcome.
func (s *Session) Serve(ctx context.Context, r io.Reader, onOutcome func(*Outcome)) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		msg, err := DecodeMessage(line)
		if err != nil {
			s.logger.Warn("Ignoring message", "err", err)
			continue
		}
		out, err := s.Handle(ctx, msg)
		if err != nil {
			s.logger.Warn("Ignoring message", "type", msg.Type, "err", err)
			continue
		}
		if out != nil && onOutcome != nil {
			onOutcome(out)
		}
		if s.Closed() {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read messages: %w", err)
	}
	return nil
}
