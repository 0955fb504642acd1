package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/caseframe/host"
)

func TestDecodeMessage(t *testing.T) {
	cases := []struct {
		raw      string
		wantType MessageType
		wantData string
	}{
		{`{"type":"import","data":"[{\"type\":\"h1\",\"text\":\"A\"}]"}`, MessageImport, `[{"type":"h1","text":"A"}]`},
		{`{"type":"import-case-study","data":[{"type":"body","text":"B"}]}`, MessageImportLegacy, `[{"type":"body","text":"B"}]`},
		{`{"type":"cancel"}`, MessageCancel, ""},
		{`{"type":"cancel","data":null}`, MessageCancel, ""},
	}
	for _, tc := range cases {
		msg, err := DecodeMessage([]byte(tc.raw))
		if err != nil {
			t.Errorf("%s: %v", tc.raw, err)
			continue
		}
		if msg.Type != tc.wantType || msg.Data != tc.wantData {
			t.Errorf("%s: got %+v", tc.raw, msg)
		}
	}
	if _, err := DecodeMessage([]byte(`{"type":`)); err == nil {
		t.Fatalf("expected error for truncated envelope")
	}
}

func TestSessionStartShowsUIOnce(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h, host.UIOptions{}, Options{Logger: quiet()})
	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	_ = s.Start(ctx)
	if len(h.ui) != 1 || h.ui[0] != (host.UIOptions{Width: 500, Height: 600, ThemeColors: true}) {
		t.Fatalf("unexpected ShowUI calls %+v", h.ui)
	}
}

func TestSessionHandle(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h, host.UIOptions{}, Options{Logger: quiet()})
	ctx := context.Background()

	for _, typ := range []MessageType{MessageImport, MessageImportLegacy} {
		out, err := s.Handle(ctx, Message{Type: typ, Data: `[{"type":"body","text":"hi"}]`})
		if err != nil || out == nil || out.State != StateDone {
			t.Fatalf("%s: out=%+v err=%v", typ, out, err)
		}
	}
	if _, err := s.Handle(ctx, Message{Type: "resize"}); !errors.Is(err, ErrUnknownMessage) {
		t.Fatalf("expected ErrUnknownMessage, got %v", err)
	}
	out, err := s.Handle(ctx, Message{Type: MessageCancel})
	if err != nil || out != nil {
		t.Fatalf("cancel: out=%v err=%v", out, err)
	}
	if h.closed != 1 || !s.Closed() {
		t.Fatalf("cancel must close the host UI")
	}
	if len(h.notices) != 2 {
		t.Fatalf("cancel must not notify, notices=%d", len(h.notices))
	}
}

func TestSessionServe(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h, host.UIOptions{Width: 320, Height: 480}, Options{Logger: quiet()})
	input := strings.Join([]string{
		`{"type":"import","data":"[{\"type\":\"h1\",\"text\":\"First\"}]"}`,
		`not json`,
		``,
		`{"type":"import","data":"oops"}`,
		`{"type":"cancel"}`,
		`{"type":"import","data":"[{\"type\":\"body\",\"text\":\"ignored\"}]"}`,
	}, "\n")

	var outcomes []*Outcome
	if err := s.Serve(context.Background(), strings.NewReader(input), func(o *Outcome) {
		outcomes = append(outcomes, o)
	}); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 import outcomes, got %d", len(outcomes))
	}
	if outcomes[0].State != StateDone || !Is(outcomes[1].Err, CodeMalformedInput) {
		t.Fatalf("unexpected outcomes %+v / %+v", outcomes[0], outcomes[1])
	}
	if len(h.created) != 1 {
		t.Fatalf("messages after cancel must not be handled, created=%d", len(h.created))
	}
	if len(h.ui) != 1 || h.ui[0].Width != 320 {
		t.Fatalf("Serve must show the configured UI once: %+v", h.ui)
	}
}
