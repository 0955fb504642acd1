package layout

// 该文件定义文本元素描述符、放置结果与调试报告，供编排器、宿主与调试 JSON 共用。
// 所有坐标与尺寸均为设计单位（pt）。

// DefaultFamily 是样式表使用的唯一字体家族。
const DefaultFamily = "Inter"

// FontName 由家族名与样式名（字重）组成，与宿主字体系统的命名一致。
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// Rect 是轴对齐矩形。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom 返回矩形下边缘的纵坐标。
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right 返回矩形右边缘的横坐标。
func (r Rect) Right() float64 { return r.X + r.Width }

// Union 返回同时包含 r 与 o 的最小矩形。
func (r Rect) Union(o Rect) Rect {
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Descriptor 是创建文本元素所需的全部属性。创建前一次性构造，之后不再修改。
// 高度由宿主在设置内容、字体与宽度之后自动计算。
type Descriptor struct {
	Content  string   `json:"content"`
	FontSize float64  `json:"fontSize"`
	Font     FontName `json:"font"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Name     string   `json:"name"`
}

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Placement 记录一个已创建元素的最终位置。
type Placement struct {
	ElementID string  `json:"elementId"`
	BlockType string  `json:"type"`
	Name      string  `json:"name"`
	Bounds    Rect    `json:"bounds"`
	Spacing   float64 `json:"spacing"`
}

// Result 汇总一次导入的布局结果。
type Result struct {
	Submitted  int         `json:"submitted"`
	Created    int         `json:"created"`
	Cursor     float64     `json:"cursor"`
	Units      string      `json:"units"`
	Placements []Placement `json:"placements"`
}
