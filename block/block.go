package block

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// 该文件定义导入载荷中的块结构以及 JSON 解码规则。

// Type 是块类型，取值为 h1..h6、body、list 之一。
type Type string

const (
	TypeH1   Type = "h1"
	TypeH2   Type = "h2"
	TypeH3   Type = "h3"
	TypeH4   Type = "h4"
	TypeH5   Type = "h5"
	TypeH6   Type = "h6"
	TypeBody Type = "body"
	TypeList Type = "list"
)

// IsHeading 仅对 h1..h6 返回 true。
func (t Type) IsHeading() bool {
	switch t {
	case TypeH1, TypeH2, TypeH3, TypeH4, TypeH5, TypeH6:
		return true
	default:
		return false
	}
}

// Known 判断类型是否属于固定的八种之一。
func (t Type) Known() bool {
	return t.IsHeading() || t == TypeBody || t == TypeList
}

// Block 是导入载荷中的一个文本块。
// Text 与 Items 使用指针/nil 区分“缺失”和“空值”。
type Block struct {
	Type  Type     `json:"type"`
	Level *int     `json:"level,omitempty"`
	Text  *string  `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
	ID    ID       `json:"id,omitempty"`

	// Malformed 记录该条目无法按块结构解码的原因，此类块不会产生输出。
	Malformed error `json:"-"`
}

// TextValue 返回 text 字段，缺失时为空串。
func (b Block) TextValue() string {
	if b.Text == nil {
		return ""
	}
	return *b.Text
}

// UnmarshalJSON implements json.Unmarshaler.
// 只有 type、text、items 的形状会导致解码失败；level 与 id 不参与排版，
// 类型不符时置空。非字符串的列表项按其 JSON 文本使用。
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  Type              `json:"type"`
		Level json.RawMessage   `json:"level"`
		Text  *string           `json:"text"`
		Items []json.RawMessage `json:"items"`
		ID    json.RawMessage   `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Block{Type: raw.Type, Text: raw.Text, Level: parseLevel(raw.Level)}
	if len(raw.ID) > 0 {
		var id ID
		if err := id.UnmarshalJSON(raw.ID); err == nil {
			b.ID = id
		}
	}
	if raw.Items != nil {
		b.Items = make([]string, len(raw.Items))
		for i, item := range raw.Items {
			b.Items[i] = itemText(item)
		}
	}
	return nil
}

// parseLevel 接受数字或数字字符串，其余返回 nil。
func parseLevel(raw json.RawMessage) *int {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return nil
	}
	var n int
	switch val := v.(type) {
	case float64:
		n = int(val)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}

func itemText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// ID 是不透明的块标识，接受 JSON 字符串或数字。
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id 必须是字符串或数字: %w", err)
	}
	*id = ID(n.String())
	return nil
}

var (
	// ErrSyntax 表示载荷不是合法的 JSON。
	ErrSyntax = errors.New("payload is not valid JSON")
	// ErrNotSequence 表示载荷不是非空数组。
	ErrNotSequence = errors.New("payload is not a non-empty array")
)

// Decode 解析导入载荷。
// 非法 JSON 返回包装了 ErrSyntax 的错误；顶层不是非空数组时返回 ErrNotSequence。
// 单个条目形状错误不会中断解码，而是记录在 Block.Malformed 中。
func Decode(payload string) ([]Block, error) {
	data := []byte(payload)
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if trimmed := strings.TrimSpace(payload); !strings.HasPrefix(trimmed, "[") {
		return nil, ErrNotSequence
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSequence, err)
	}
	if len(raw) == 0 {
		return nil, ErrNotSequence
	}

	blocks := make([]Block, 0, len(raw))
	for i, entry := range raw {
		blocks = append(blocks, decodeEntry(i, entry))
	}
	return blocks, nil
}

func decodeEntry(index int, entry json.RawMessage) Block {
	trimmed := bytes.TrimSpace(entry)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Block{Malformed: fmt.Errorf("block %d: 不是对象", index)}
	}
	var b Block
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return Block{Malformed: fmt.Errorf("block %d: %w", index, err)}
	}
	return b
}
