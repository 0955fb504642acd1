package layout

import "github.com/ByLCY/caseframe/block"

// Slot 是下一个元素的放置位置与固定宽度。
type Slot struct {
	X     float64
	Y     float64
	Width float64
}

// Accumulator 以单一纵向游标自上而下堆叠元素，不回退、不重叠。
// 游标只属于一次导入，不在多次导入之间共享。
type Accumulator struct {
	opts   Options
	cursor float64
	placed []Placement
}

// NewAccumulator 创建游标为 0 的累加器；opts 的零值字段使用默认值。
func NewAccumulator(opts Options) *Accumulator {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.HeadingSpacing <= 0 {
		opts.HeadingSpacing = def.HeadingSpacing
	}
	if opts.BodySpacing <= 0 {
		opts.BodySpacing = def.BodySpacing
	}
	return &Accumulator{opts: opts}
}

// Slot 返回下一个元素的位置：x 恒为 0，y 为当前游标。
func (a *Accumulator) Slot() Slot {
	return Slot{X: 0, Y: a.cursor, Width: a.opts.Width}
}

// Cursor 返回当前游标值。
func (a *Accumulator) Cursor() float64 { return a.cursor }

// Spacing 返回块类型之后的间距：标题 20，其余 12。
func (a *Accumulator) Spacing(t block.Type) float64 {
	if t.IsHeading() {
		return a.opts.HeadingSpacing
	}
	return a.opts.BodySpacing
}

// Place 在宿主完成自动高度计算后调用：记录元素位置，并把游标推进 height + spacing。
// 负高度按 0 处理，保证游标单调不减。
func (a *Accumulator) Place(id string, t block.Type, name string, height float64) Placement {
	if height < 0 {
		height = 0
	}
	slot := a.Slot()
	p := Placement{
		ElementID: id,
		BlockType: string(t),
		Name:      name,
		Bounds:    Rect{X: slot.X, Y: slot.Y, Width: slot.Width, Height: height},
		Spacing:   a.Spacing(t),
	}
	a.cursor += height + p.Spacing
	a.placed = append(a.placed, p)
	return p
}

// Placements 按放置顺序返回全部记录。
func (a *Accumulator) Placements() []Placement {
	out := make([]Placement, len(a.placed))
	copy(out, a.placed)
	return out
}

// Result 汇总布局结果，submitted 为载荷中的块总数。
func (a *Accumulator) Result(submitted int) *Result {
	return &Result{
		Submitted:  submitted,
		Created:    len(a.placed),
		Cursor:     a.cursor,
		Units:      UnitToString(UnitPT),
		Placements: a.Placements(),
	}
}

// Describe 根据规范化后的块与放置位置构造不可变的元素描述符。
func Describe(r block.Rendered, slot Slot, family string) Descriptor {
	if family == "" {
		family = DefaultFamily
	}
	return Descriptor{
		Content:  r.Content,
		FontSize: float64(r.Style.Size),
		Font:     FontName{Family: family, Style: string(r.Style.Weight)},
		X:        slot.X,
		Y:        slot.Y,
		Width:    slot.Width,
		Name:     r.Label,
	}
}
