package outline

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	outlineLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Newline", Pattern: `\r?\n`},
		{Name: "Heading", Pattern: `#{1,6}[ \t]+[^\r\n]*`},
		{Name: "Bullet", Pattern: `[-*+][ \t]+[^\r\n]*`},
		{Name: "Ordered", Pattern: `\d+[.)][ \t]+[^\r\n]*`},
		{Name: "Text", Pattern: `[^\r\n]+`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(outlineLexer),
		participle.Elide("Whitespace"),
	)

	itemMarker = regexp.MustCompile(`^(?:[-*+]|\d+[.)])[ \t]+`)
)

// Document is the root AST node of a note.
type Document struct {
	Lines []*Line `parser:"@@*"`
}

// Line is one source line. A blank line ends the current paragraph.
type Line struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Blank   bool           `parser:"  @Newline"`
	Heading Heading        `parser:"| ( @Heading"`
	Item    Item           `parser:"  | @( Bullet | Ordered )"`
	Text    Text           `parser:"  | @Text ) Newline?"`
}

// Kind returns the human-readable line type.
func (l *Line) Kind() string {
	switch {
	case l == nil:
		return "unknown"
	case l.Blank:
		return "blank"
	case l.Heading.Level > 0:
		return "heading"
	case l.Item.Marker != "":
		return "item"
	case l.Text != "":
		return "text"
	default:
		return "unknown"
	}
}

// Heading is a `#`..`######` line.
type Heading struct {
	Level int
	Text  string
}

// Capture implements participle.Capture.
func (h *Heading) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("heading capture requires value")
	}
	raw := values[0]
	level := len(raw) - len(strings.TrimLeft(raw, "#"))
	h.Level = level
	h.Text = strings.TrimSpace(raw[level:])
	return nil
}

// Item is a bullet (`-`, `*`, `+`) or numbered (`1.`, `1)`) list line.
type Item struct {
	Marker string
	Text   string
}

// Capture implements participle.Capture.
func (i *Item) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("item capture requires value")
	}
	raw := values[0]
	marker := itemMarker.FindString(raw)
	if marker == "" {
		return fmt.Errorf("list item %q has no marker", raw)
	}
	i.Marker = strings.TrimSpace(marker)
	i.Text = strings.TrimSpace(raw[len(marker):])
	return nil
}

// Text is a paragraph line with trailing whitespace removed.
type Text string

// Capture implements participle.Capture.
func (t *Text) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("text capture requires value")
	}
	*t = Text(strings.TrimRight(values[0], " \t"))
	return nil
}

// Parse parses a note from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a note from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
