package fonts

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/ByLCY/caseframe/block"
	"github.com/ByLCY/caseframe/layout"
)

// Loader 由宿主实现：请求加载一个字体资源，直到完成或失败才返回。
type Loader interface {
	LoadFont(ctx context.Context, name layout.FontName) error
}

// Provisioner 确保样式表引用的全部字重在创建文本之前都已向宿主请求过。
type Provisioner struct {
	loader Loader
	family string
	logger *log.Logger
}

// NewProvisioner creates a provisioner for family (Inter when empty).
// A nil logger falls back to log.Default().
func NewProvisioner(loader Loader, family string, logger *log.Logger) *Provisioner {
	if family == "" {
		family = layout.DefaultFamily
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Provisioner{loader: loader, family: family, logger: logger}
}

// Fonts returns the font assets in load order.
func (p *Provisioner) Fonts() []layout.FontName {
	weights := block.Weights()
	out := make([]layout.FontName, 0, len(weights))
	for _, w := range weights {
		out = append(out, layout.FontName{Family: p.family, Style: string(w)})
	}
	return out
}

// Ensure 依次加载全部字体。单个字体失败只记录日志并继续，
// 返回值汇总了所有失败，仅用于诊断，调用方不应据此中止导入。
func (p *Provisioner) Ensure(ctx context.Context) error {
	var errs error
	for _, name := range p.Fonts() {
		if err := p.loader.LoadFont(ctx, name); err != nil {
			p.logger.Warn("Could not load font, host fallback will be used", "family", name.Family, "style", name.Style, "err", err)
			errs = multierr.Append(errs, fmt.Errorf("load %s %s: %w", name.Family, name.Style, err))
			continue
		}
		p.logger.Debug("Font loaded", "family", name.Family, "style", name.Style)
	}
	return errs
}
