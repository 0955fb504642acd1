package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/caseframe/config"
	"github.com/ByLCY/caseframe/importer"
	"github.com/ByLCY/caseframe/layout"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug must be filtered at info level")
	}
	logger.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("info message missing: %q", buf.String())
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if loggerFromContext(ctx) != log.Default() {
		t.Fatalf("expected default logger")
	}
	if configFromContext(ctx) != config.Default() {
		t.Fatalf("expected default config")
	}
	l := log.New(&bytes.Buffer{})
	cfg := config.Default()
	cfg.Output.Format = "svg"
	ctx = withConfig(withLogger(ctx, l), cfg)
	if loggerFromContext(ctx) != l || configFromContext(ctx).Output.Format != "svg" {
		t.Fatalf("context values not retrieved")
	}
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	if version != "1.0.0" || commit != "abc123" || date != "2024-01-01" {
		t.Fatalf("version not set: %s %s %s", version, commit, date)
	}
}

func TestOutputPath(t *testing.T) {
	res := &layout.Result{Placements: []layout.Placement{
		{BlockType: "body", Name: "BODY: Intro"},
		{BlockType: "h2", Name: "H2: Checkout Redesign 2024"},
	}}
	if got := outputPath("", "out", "PDF", res); got != filepath.Join("out", "checkout-redesign-2024.pdf") {
		t.Fatalf("outputPath = %s", got)
	}
	if got := outputPath("x.svg", "out", "pdf", res); got != "x.svg" {
		t.Fatalf("explicit path ignored: %s", got)
	}
	if got := outputPath("", ".", "svg", nil); got != "import.svg" {
		t.Fatalf("fallback name = %s", got)
	}
	noHeading := &layout.Result{Placements: []layout.Placement{{BlockType: "list", Name: "LIST: a"}}}
	if got := sceneName(noHeading); got != defaultOutputName {
		t.Fatalf("sceneName = %s", got)
	}
}

func TestReadInput(t *testing.T) {
	data, err := readInput(strings.NewReader("stdin payload"), "-")
	if err != nil || string(data) != "stdin payload" {
		t.Fatalf("stdin read = %q, %v", data, err)
	}
	path := filepath.Join(t.TempDir(), "blocks.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if data, err := readInput(nil, path); err != nil || string(data) != "[]" {
		t.Fatalf("file read = %q, %v", data, err)
	}
	if _, err := readInput(nil, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEnvelope(t *testing.T) {
	line, err := envelope([]byte("[\n  {\"type\": \"h1\", \"text\": \"Hi\"}\n]\n"))
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}
	if bytes.Count(line, []byte("\n")) != 1 {
		t.Fatalf("envelope must be one line: %q", line)
	}
	msg, err := importer.DecodeMessage(bytes.TrimSpace(line))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != importer.MessageImport || msg.Data != `[{"type":"h1","text":"Hi"}]` {
		t.Fatalf("unexpected message %+v", msg)
	}
	var probe []map[string]any
	if err := json.Unmarshal([]byte(msg.Data), &probe); err != nil {
		t.Fatalf("data is not a block array: %v", err)
	}
}

func TestImporterOptionsWithData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"client":"Acme"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := config.Default()
	cfg.Fonts.Family = "Roboto"
	opts, err := importerOptions(context.Background(), cfg, path)
	if err != nil {
		t.Fatalf("importerOptions: %v", err)
	}
	if opts.Family != "Roboto" || opts.Binder.Text("${client}") != "Acme" {
		t.Fatalf("unexpected options %+v", opts)
	}
	if _, err := importerOptions(context.Background(), cfg, filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Fatalf("expected error for missing data file")
	}
}

func TestImportCommandWritesScene(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "blocks.json")
	payload := `[{"type":"h1","text":"Checkout Redesign"},{"type":"body","text":"We rebuilt the flow."}]`
	if err := os.WriteFile(input, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfgPath := filepath.Join(dir, "caseframe.toml")
	cfgText := "[fonts]\ndir = \"" + filepath.ToSlash(filepath.Join(dir, "fonts")) + "\"\nsystem = false\n\n[output]\nformat = \"svg\"\ndir = \"" + filepath.ToSlash(dir) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgText), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	statusOut = &bytes.Buffer{}

	debugPath := filepath.Join(dir, "debug", "layout.json")
	root := newRootCmd()
	root.SetArgs([]string{"--config", cfgPath, "import", input, "--debug", debugPath})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("import: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "checkout-redesign.svg"))
	if err != nil {
		t.Fatalf("scene not written: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Fatalf("output is not SVG")
	}
	raw, err := os.ReadFile(debugPath)
	if err != nil {
		t.Fatalf("debug report not written: %v", err)
	}
	var res layout.Result
	if err := json.Unmarshal(raw, &res); err != nil || res.Created != 2 {
		t.Fatalf("unexpected debug report %s (%v)", raw, err)
	}
}

func TestImportCommandFailsOnEmptyPayload(t *testing.T) {
	statusOut = &bytes.Buffer{}
	root := newRootCmd()
	root.SetIn(strings.NewReader("[]"))
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "import", "-"})
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err != errImportFailed {
		t.Fatalf("expected errImportFailed, got %v", err)
	}
	if !strings.Contains(statusOut.(*bytes.Buffer).String(), "No blocks found in JSON") {
		t.Fatalf("notice not printed: %q", statusOut)
	}
}
