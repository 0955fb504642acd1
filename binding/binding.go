// Package binding 为块文本提供 ${path} 占位符替换，路径支持 a.b[0].c 形式。
package binding

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Binder 针对一份数据文档解析占位符。零值 Binder 不做任何替换。
type Binder struct {
	data any
}

// New 创建绑定到 data 的 Binder。data 通常来自 json.Unmarshal。
func New(data any) *Binder {
	return &Binder{data: data}
}

// Decode 解析 JSON 数据文档。
func Decode(raw []byte) (*Binder, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析绑定数据失败: %w", err)
	}
	return New(data), nil
}

// Text 替换 text 中所有可解析的占位符；无法解析的占位符原样保留。
func (b *Binder) Text(text string) string {
	if b == nil || b.data == nil || !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		val, ok := b.Lookup(path)
		if !ok {
			return match
		}
		return format(val)
	})
}

// Lookup 按路径取值。
func (b *Binder) Lookup(path string) (any, bool) {
	if b == nil || b.data == nil {
		return nil, false
	}
	steps, err := parsePath(path)
	if err != nil {
		return nil, false
	}
	current := b.data
	for _, s := range steps {
		var ok bool
		if current, ok = s.apply(current); !ok {
			return nil, false
		}
	}
	return current, true
}

type step struct {
	key   string
	index int
	isIdx bool
}

func (s step) apply(v any) (any, bool) {
	if s.isIdx {
		arr, ok := v.([]any)
		if !ok || s.index < 0 || s.index >= len(arr) {
			return nil, false
		}
		return arr[s.index], true
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := m[s.key]
	return val, ok
}

// parsePath 把 a.b[0].c 拆成 key/index 步骤序列。
func parsePath(path string) ([]step, error) {
	if path == "" {
		return nil, fmt.Errorf("空路径")
	}
	var steps []step
	for _, segment := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(segment, "[")
		if name != "" {
			steps = append(steps, step{key: name})
		}
		if rest == "" {
			if name == "" {
				return nil, fmt.Errorf("路径 %q 含空段", path)
			}
			continue
		}
		rest = "[" + rest
		for rest != "" {
			end := strings.IndexByte(rest, ']')
			if rest[0] != '[' || end == -1 {
				return nil, fmt.Errorf("路径 %q 下标格式错误", path)
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return nil, fmt.Errorf("路径 %q 下标不是整数: %w", path, err)
			}
			steps = append(steps, step{index: idx, isIdx: true})
			rest = rest[end+1:]
		}
	}
	return steps, nil
}

func format(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	default:
		return fmt.Sprint(val)
	}
}
