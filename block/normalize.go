package block

import (
	"strings"
	"unicode/utf8"
)

const (
	bulletMarker = "• "
	labelLimit   = 30
	labelDefault = "Text"
)

// Rendered 是可以落成文本元素的块：最终字符内容加上样式。
type Rendered struct {
	Type    Type
	Content string
	Style   Style
	Label   string
}

// Normalize 判断块是否产生可渲染文本。
// 列表块优先使用 items（旧格式），其次使用 text（新格式）；
// 其他类型要求 text 去除空白后非空，并把字面量 `\n` 还原为换行。
func Normalize(b Block) (Rendered, bool) {
	if b.Malformed != nil {
		return Rendered{}, false
	}

	var content string
	switch b.Type {
	case TypeList:
		switch {
		case len(b.Items) > 0:
			lines := make([]string, len(b.Items))
			for i, item := range b.Items {
				lines[i] = bulletMarker + item
			}
			content = strings.Join(lines, "\n")
		case b.TextValue() != "":
			content = bulletMarker + b.TextValue()
		default:
			return Rendered{}, false
		}
	default:
		text := b.TextValue()
		if strings.TrimSpace(text) == "" {
			return Rendered{}, false
		}
		content = Unescape(text)
	}

	return Rendered{
		Type:    b.Type,
		Content: content,
		Style:   StyleFor(b.Type),
		Label:   Label(b),
	}, true
}

// Unescape 把两个字符组成的 `\n` 序列替换为真实换行。
func Unescape(text string) string {
	return strings.ReplaceAll(text, `\n`, "\n")
}

// Label 生成图层名称：大写类型、冒号和最多 30 个字符的预览。
func Label(b Block) string {
	preview := truncate(b.TextValue(), labelLimit)
	if preview == "" && len(b.Items) > 0 {
		preview = truncate(b.Items[0], labelLimit)
	}
	if preview == "" {
		preview = labelDefault
	}
	return strings.ToUpper(string(b.Type)) + ": " + preview
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
