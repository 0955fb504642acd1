package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackFamily 是内置回退字体的家族名。
const FallbackFamily = "Go"

var fallbackFaces = map[string][]byte{
	"regular":  goregular.TTF,
	"medium":   gomedium.TTF,
	"semibold": gobold.TTF,
	"bold":     gobold.TTF,
}

// Fallback 返回与字重名称对应的内置字体数据（TTF）。
// style 可写为 "Semi Bold"、"SemiBold" 或 "builtin:semibold"，大小写不敏感。
func Fallback(style string) ([]byte, error) {
	key := normalizeStyle(style)
	if key == "" {
		key = "regular"
	}
	data, ok := fallbackFaces[key]
	if !ok {
		return nil, fmt.Errorf("没有与字重 %q 对应的内置字体", style)
	}
	return data, nil
}

func normalizeStyle(style string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(style, "builtin:"), "built-in:")
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
