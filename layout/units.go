package layout

// 设计坐标统一使用 pt（与宿主画布的像素单位一一对应），渲染器内部使用 mm。

// Unit 表示长度单位。
type Unit int

const (
	UnitNone Unit = iota // 无单位（倍数）
	UnitMM               // 毫米
	UnitPT               // 点
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Pt 构造以 pt 为单位的长度。
func Pt(v float64) Length { return Length{Value: v, Unit: UnitPT} }

// Mm 构造以 mm 为单位的长度。
func Mm(v float64) Length { return Length{Value: v, Unit: UnitMM} }

// To converts this length to target unit. UnitNone keeps the numeric value.
func (l Length) To(target Unit) float64 {
	switch {
	case l.Unit == target, l.Unit == UnitNone, target == UnitNone:
		return l.Value
	case l.Unit == UnitPT && target == UnitMM:
		return l.Value * PtToMm
	case l.Unit == UnitMM && target == UnitPT:
		return l.Value * MmToPt
	}
	return l.Value
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }

// AutoLineHeight 是宿主 "auto" 行高的近似：字号的 1.2 倍。
var AutoLineHeight = LineHeightSpec{Factor: 1.2}

// LineHeightSpec is a line height expressed as a factor of the font size.
type LineHeightSpec struct {
	Factor float64 `json:"factor"`
}

// Resolve computes the line height in target unit for fontSize.
// A non-positive factor falls back to 1.2.
func (s LineHeightSpec) Resolve(fontSize Length, target Unit) float64 {
	factor := s.Factor
	if factor <= 0 {
		factor = 1.2
	}
	return fontSize.To(target) * factor
}
