// Package host defines the design-canvas collaborator that owns text elements,
// fonts, selection, the viewport and the UI surface.
//
// The import core only talks to a Host: it never mutates elements after
// creation and never deletes them.
package host

import (
	"context"

	"github.com/ByLCY/caseframe/layout"
)

// Element is a text element created and owned by the host.
type Element interface {
	ID() string
	Name() string
	// Bounds reports the position and the auto-computed height.
	Bounds() layout.Rect
}

// UIOptions configures the plugin panel shown once at startup.
type UIOptions struct {
	Width       int
	Height      int
	ThemeColors bool
}

// NoticeKind distinguishes failure notices from success at a glance.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a short user-facing status message.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Host is the design tool the importer drives.
type Host interface {
	ShowUI(ctx context.Context, opts UIOptions) error
	LoadFont(ctx context.Context, name layout.FontName) error
	// CreateText creates one element from d. The host applies content, font
	// and width, then computes the height before returning.
	CreateText(ctx context.Context, d layout.Descriptor) (Element, error)
	Select(ctx context.Context, elems []Element) error
	ScrollAndZoomIntoView(ctx context.Context, elems []Element) error
	Notify(ctx context.Context, n Notice)
	// Close tears down the UI surface.
	Close(ctx context.Context) error
}
