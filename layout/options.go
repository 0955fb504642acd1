package layout

const (
	defaultWidth          = 800.0
	defaultHeadingSpacing = 20.0
	defaultBodySpacing    = 12.0
)

// Options 配置单列布局的固定参数。
type Options struct {
	Width          float64
	HeadingSpacing float64
	BodySpacing    float64
}

// DefaultOptions 返回固定宽度 800、标题后间距 20、其他块后间距 12 的配置。
func DefaultOptions() Options {
	return Options{
		Width:          defaultWidth,
		HeadingSpacing: defaultHeadingSpacing,
		BodySpacing:    defaultBodySpacing,
	}
}

// Typesetter 负责根据字体与宽度约束将文本拆成行。宿主用它在创建元素后计算自动高度。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontName, fontSize float64) ([]TextLine, error)
}
