package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 800}
	for _, pt := range samples {
		back := Mm(Pt(pt).ToMM()).ToPT()
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

func TestLengthToConversions(t *testing.T) {
	if got := Pt(12).ToMM(); math.Abs(got-12*PtToMm) > 1e-9 {
		t.Fatalf("12pt 转 mm 期望 %g，实际 %g", 12*PtToMm, got)
	}
	if got := Mm(10).ToPT(); math.Abs(got-10*MmToPt) > 1e-9 {
		t.Fatalf("10mm 转 pt 期望 %g，实际 %g", 10*MmToPt, got)
	}
	if got := (Length{Value: 3}).ToMM(); got != 3 {
		t.Fatalf("无单位长度应保持数值，实际 %g", got)
	}
	if UnitToString(UnitPT) != "pt" || UnitToString(UnitNone) != "" {
		t.Fatalf("UnitToString 输出错误")
	}
}

// TestLineHeightResolve 验证倍数行高及其默认值。
func TestLineHeightResolve(t *testing.T) {
	size := Pt(16)
	if got := AutoLineHeight.Resolve(size, UnitPT); math.Abs(got-19.2) > 1e-9 {
		t.Fatalf("auto 行高期望 19.2pt，实际 %g", got)
	}
	double := LineHeightSpec{Factor: 2}
	if got := double.Resolve(size, UnitMM); math.Abs(got-32*PtToMm) > 1e-9 {
		t.Fatalf("2 倍行高解析为 mm 错误: got=%g", got)
	}
	if got := (LineHeightSpec{}).Resolve(size, UnitPT); math.Abs(got-19.2) > 1e-9 {
		t.Fatalf("零倍数应回退到 1.2，实际 %g", got)
	}
}
