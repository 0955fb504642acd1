package block

// Weight 是字重名称，取值与宿主字体样式名一致。
type Weight string

const (
	WeightRegular  Weight = "Regular"
	WeightMedium   Weight = "Medium"
	WeightSemiBold Weight = "Semi Bold"
	WeightBold     Weight = "Bold"
)

// Style 描述块类型对应的排版样式。
type Style struct {
	Size   int    `json:"size"`
	Weight Weight `json:"weight"`
}

var styleTable = map[Type]Style{
	TypeH1:   {Size: 32, Weight: WeightBold},
	TypeH2:   {Size: 24, Weight: WeightSemiBold},
	TypeH3:   {Size: 18, Weight: WeightSemiBold},
	TypeH4:   {Size: 16, Weight: WeightMedium},
	TypeH5:   {Size: 14, Weight: WeightMedium},
	TypeH6:   {Size: 14, Weight: WeightMedium},
	TypeBody: {Size: 16, Weight: WeightRegular},
	TypeList: {Size: 16, Weight: WeightRegular},
}

// StyleFor 返回类型对应的样式；未知或缺失的类型回退到 body。
func StyleFor(t Type) Style {
	if s, ok := styleTable[t]; ok {
		return s
	}
	return styleTable[TypeBody]
}

// Weights 按加载顺序返回样式表引用的全部字重。
func Weights() []Weight {
	return []Weight{WeightRegular, WeightMedium, WeightSemiBold, WeightBold}
}
