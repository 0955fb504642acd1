// Package outline 把 Markdown 风格的笔记转换成导入所需的块数组。
package outline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ByLCY/caseframe/block"
)

// Blocks 按出现顺序生成块：标题 → h1..h6，列表行 → 每项一个 list 块，
// 连续文本行合并为一个 body 块（以换行连接），空行结束段落。
// 空标题与空列表项被丢弃。
func (d *Document) Blocks() []block.Block {
	var (
		out  []block.Block
		para []string
	)
	flush := func() {
		if len(para) == 0 {
			return
		}
		out = append(out, newBlock(block.TypeBody, nil, strings.Join(para, "\n")))
		para = nil
	}

	for _, line := range d.Lines {
		switch line.Kind() {
		case "heading":
			flush()
			if line.Heading.Text == "" {
				continue
			}
			level := line.Heading.Level
			out = append(out, newBlock(block.Type(fmt.Sprintf("h%d", level)), &level, line.Heading.Text))
		case "item":
			flush()
			if line.Item.Text == "" {
				continue
			}
			out = append(out, newBlock(block.TypeList, nil, line.Item.Text))
		case "text":
			para = append(para, string(line.Text))
		default:
			flush()
		}
	}
	flush()
	return out
}

func newBlock(t block.Type, level *int, text string) block.Block {
	return block.Block{
		Type:  t,
		Level: level,
		Text:  &text,
		ID:    block.ID(uuid.NewString()),
	}
}

// Encode 以缩进 JSON 写出块数组，结果可直接作为导入载荷。
func Encode(w io.Writer, blocks []block.Block) error {
	if blocks == nil {
		blocks = []block.Block{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(blocks); err != nil {
		return fmt.Errorf("编码块数组失败: %w", err)
	}
	return nil
}

// Convert 解析 r 并返回对应的块数组。
func Convert(r io.Reader) ([]block.Block, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("解析笔记失败: %w", err)
	}
	return doc.Blocks(), nil
}
