package canvashost

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/caseframe/layout"
)

// Output formats supported by Render.
const (
	FormatPDF = "pdf"
	FormatSVG = "svg"
)

// Render draws every element on a single page sized to the scene and returns
// the encoded document.
func (h *Host) Render(format string) ([]byte, error) {
	elements := h.Elements()
	if len(elements) == 0 {
		return nil, fmt.Errorf("画布上没有可渲染的元素")
	}

	scene := elements[0].Bounds()
	for _, el := range elements[1:] {
		scene = scene.Union(el.Bounds())
	}
	widthMM := layout.Pt(scene.Right()).ToMM()
	heightMM := layout.Pt(scene.Bottom()).ToMM()
	if heightMM <= 0 {
		heightMM = 1
	}

	c := canvas.New(widthMM, heightMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，y 向下
	for _, el := range elements {
		if err := h.drawElement(ctx, el); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case FormatPDF, "":
		writer := pdf.New(&buf, widthMM, heightMM, nil)
		writer.SetInfo(elements[0].Name(), "", "", "", "caseframe")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case FormatSVG:
		writer := svg.New(&buf, widthMM, heightMM, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", format)
	}
	return buf.Bytes(), nil
}

func (h *Host) drawElement(ctx *canvas.Context, el *Element) error {
	d := el.Descriptor()
	face, err := h.fonts.face(d.Font, d.FontSize)
	if err != nil {
		return err
	}
	metrics := face.Metrics()

	x := layout.Pt(d.X).ToMM()
	cursorY := layout.Pt(d.Y).ToMM()
	for _, line := range el.lines {
		if line.Content != "" {
			text := canvas.NewTextLine(face, line.Content, canvas.Left)
			// 基线位置：行顶部加上字体上升部
			ctx.DrawText(x, cursorY+metrics.Ascent, text)
		}
		cursorY += layout.Pt(line.Height).ToMM()
	}
	return nil
}
