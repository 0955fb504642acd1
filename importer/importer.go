// Package importer drives one block payload through font provisioning,
// normalization and layout into host text elements.
package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/caseframe/binding"
	"github.com/ByLCY/caseframe/block"
	"github.com/ByLCY/caseframe/fonts"
	"github.com/ByLCY/caseframe/host"
	"github.com/ByLCY/caseframe/layout"
)

// Options configures an Importer.
type Options struct {
	// Family is the font family requested from the host (Inter when empty).
	Family string
	Layout layout.Options
	// Binder, when set, fills ${path} placeholders in text and items.
	Binder *binding.Binder
	Logger *log.Logger
}

// Outcome describes one finished import.
type Outcome struct {
	State     State
	Trace     []State
	Submitted int
	Created   int
	Elements  []host.Element
	Layout    *layout.Result
	Notice    host.Notice
	Err       error

	focused bool
}

// Importer turns payloads into host elements. The layout cursor is local to
// each Import call.
type Importer struct {
	host        host.Host
	opts        Options
	logger      *log.Logger
	provisioner *fonts.Provisioner
}

// New creates an importer bound to h.
func New(h host.Host, opts Options) *Importer {
	if opts.Family == "" {
		opts.Family = layout.DefaultFamily
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Importer{
		host:        h,
		opts:        opts,
		logger:      opts.Logger,
		provisioner: fonts.NewProvisioner(h, opts.Family, opts.Logger),
	}
}

// Import runs the full pipeline for payload and delivers exactly one notice.
// Elements created before a failure stay on the canvas.
func (i *Importer) Import(ctx context.Context, payload string) *Outcome {
	out := &Outcome{}
	i.transition(out, StateIdle)

	err := i.safeRun(ctx, payload, out)
	if err != nil {
		i.transition(out, StateFailed)
		out.Err = err
		i.logFailure(err)
		if Is(err, CodeUnexpectedFailure) && len(out.Elements) > 0 && !out.focused {
			if ferr := i.focus(ctx, out.Elements); ferr != nil {
				i.logger.Warn("Could not select partial result", "err", ferr)
			}
		}
	} else {
		i.transition(out, StateDone)
	}

	out.Created = len(out.Elements)
	out.Notice = noticeFor(out)
	i.host.Notify(ctx, out.Notice)
	return out
}

func (i *Importer) safeRun(ctx context.Context, payload string, out *Outcome) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = WrapError(CodeUnexpectedFailure, fmt.Errorf("panic: %v", r), "import aborted")
		}
	}()
	return i.run(ctx, payload, out)
}

func (i *Importer) run(ctx context.Context, payload string, out *Outcome) error {
	i.transition(out, StateParsing)
	blocks, err := block.Decode(payload)
	if err != nil {
		if errors.Is(err, block.ErrSyntax) {
			return WrapError(CodeMalformedInput, err, "payload is not valid JSON")
		}
		return WrapError(CodeEmptyInput, err, "no blocks found")
	}
	out.Submitted = len(blocks)

	i.transition(out, StateImporting)
	if err := i.provisioner.Ensure(ctx); err != nil {
		i.logger.Warn("Some fonts failed to load", "err", err)
	}

	acc := layout.NewAccumulator(i.opts.Layout)
	for idx, b := range blocks {
		if b.Malformed == nil && !b.Type.Known() {
			i.logger.Debug("Unknown block type, using body style", "index", idx, "type", b.Type)
		}
		r, ok := block.Normalize(bind(i.opts.Binder, b))
		if !ok {
			i.logger.Debug("Block skipped", "index", idx, "type", b.Type, "id", b.ID, "malformed", b.Malformed)
			continue
		}
		desc := layout.Describe(r, acc.Slot(), i.opts.Family)
		el, err := i.host.CreateText(ctx, desc)
		if err != nil {
			out.Layout = acc.Result(out.Submitted)
			return WrapError(CodeUnexpectedFailure, err, "create text for block %d", idx)
		}
		acc.Place(el.ID(), r.Type, el.Name(), el.Bounds().Height)
		out.Elements = append(out.Elements, el)
	}
	out.Layout = acc.Result(out.Submitted)

	if len(out.Elements) == 0 {
		return NewError(CodeNoRenderableOutput, "no text frames created from %d blocks", out.Submitted)
	}
	out.focused = true
	if err := i.focus(ctx, out.Elements); err != nil {
		return WrapError(CodeUnexpectedFailure, err, "frame result")
	}
	return nil
}

// focus selects elems and frames them in the viewport.
func (i *Importer) focus(ctx context.Context, elems []host.Element) error {
	if err := i.host.Select(ctx, elems); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	if err := i.host.ScrollAndZoomIntoView(ctx, elems); err != nil {
		return fmt.Errorf("scroll into view: %w", err)
	}
	return nil
}

func (i *Importer) transition(out *Outcome, s State) {
	out.State = s
	out.Trace = append(out.Trace, s)
	i.logger.Debug("Import state", "state", s)
}

func (i *Importer) logFailure(err error) {
	switch GetCode(err) {
	case CodeEmptyInput, CodeNoRenderableOutput:
		i.logger.Warn("Import produced nothing", "code", GetCode(err), "err", err)
	default:
		i.logger.Error("Import failed", "code", GetCode(err), "err", err)
	}
}

// bind applies b to the text fields of blk; blk itself is not modified.
func bind(b *binding.Binder, blk block.Block) block.Block {
	if b == nil {
		return blk
	}
	if blk.Text != nil {
		text := b.Text(*blk.Text)
		blk.Text = &text
	}
	if len(blk.Items) > 0 {
		items := make([]string, len(blk.Items))
		for n, item := range blk.Items {
			items[n] = b.Text(item)
		}
		blk.Items = items
	}
	return blk
}
