package canvashost

import (
	"math"
	"strings"
	"unicode"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/caseframe/layout"
)

// LayoutLines 实现 layout.Typesetter，使用贪心换行算法。
// 约定：width/fontSize 以及返回的行宽、行高均为设计单位 pt；与字体系统交互时在边界做 pt↔mm 换算。
func (h *Host) LayoutLines(content string, width float64, font layout.FontName, fontSize float64) ([]layout.TextLine, error) {
	face, err := h.fonts.face(font, fontSize)
	if err != nil {
		return nil, err
	}

	lineHeight := face.Metrics().LineHeight // mm
	if lineHeight <= 0 {
		lineHeight = layout.AutoLineHeight.Resolve(layout.Pt(fontSize), layout.UnitMM)
	}
	limit := layout.Pt(width).ToMM()

	lines := greedyWrapTokens(content, limit, face)
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: ""}}
	}
	for i := range lines {
		lines[i].Width = layout.Mm(lines[i].Width).ToPT()
		lines[i].Height = layout.Mm(lineHeight).ToPT()
	}
	return lines, nil
}

// segment is a run of text, a run of blanks, or a hard line break.
type segment struct {
	text  string
	blank bool
	brk   bool
}

// greedyWrapTokens 优先在空白处分割，超过限制时在词内拆分；显式换行总是断行。
// limit 与返回的宽度均为 mm。
func greedyWrapTokens(content string, limit float64, face *canvas.FontFace) []layout.TextLine {
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []layout.TextLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, layout.TextLine{Content: "", Width: 0})
			}
			return
		}
		lines = append(lines, layout.TextLine{
			Content: strings.TrimRightFunc(builder.String(), unicode.IsSpace),
			Width:   currentWidth,
		})
		builder.Reset()
		currentWidth = 0
	}

	appendText := func(text string, width float64) {
		builder.WriteString(text)
		currentWidth += width
	}

	for _, seg := range segmentContent(content) {
		if seg.brk {
			emit(true)
			continue
		}

		width := face.TextWidth(seg.text)
		if currentWidth > 0 && currentWidth+width > limit {
			if seg.blank {
				// 行尾空白不换到下一行
				continue
			}
			emit(false)
		}
		if width <= limit {
			appendText(seg.text, width)
			continue
		}

		for _, chunk := range splitTokenByWidth(seg.text, limit, face) {
			chunkWidth := face.TextWidth(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendText(chunk, chunkWidth)
		}
	}

	emit(true)
	return lines
}

// segmentContent splits s at every change between blank and non-blank runes.
// "\r" is dropped and each "\n" becomes its own break segment.
func segmentContent(s string) []segment {
	var out []segment
	start := -1
	blank := false
	for i, r := range s {
		isBreak := r == '\n' || r == '\r'
		isBlank := !isBreak && unicode.IsSpace(r)
		if start >= 0 && (isBreak || isBlank != blank) {
			out = append(out, segment{text: s[start:i], blank: blank})
			start = -1
		}
		switch {
		case r == '\n':
			out = append(out, segment{brk: true})
		case r == '\r':
		case start < 0:
			start, blank = i, isBlank
		}
	}
	if start >= 0 {
		out = append(out, segment{text: s[start:], blank: blank})
	}
	return out
}

func splitTokenByWidth(token string, limit float64, face *canvas.FontFace) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var runes []rune
	for _, r := range token {
		runes = append(runes, r)
		if len(runes) > 1 && face.TextWidth(string(runes)) > limit {
			parts = append(parts, string(runes[:len(runes)-1]))
			runes = []rune{r}
		}
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
