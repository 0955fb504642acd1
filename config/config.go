// Package config 读取 caseframe 的 TOML 配置文件。缺失的字段使用默认值。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/caseframe/host"
	"github.com/ByLCY/caseframe/layout"
)

// Config is the full configuration file.
type Config struct {
	Fonts  Fonts  `toml:"fonts"`
	UI     UI     `toml:"ui"`
	View   View   `toml:"view"`
	Layout Layout `toml:"layout"`
	Output Output `toml:"output"`
	Log    Log    `toml:"log"`
}

// Fonts locates the font assets requested by an import.
type Fonts struct {
	Dir    string `toml:"dir"`
	Family string `toml:"family"`
	System bool   `toml:"system"`
}

// UI is the plugin panel size.
type UI struct {
	Width       int  `toml:"width"`
	Height      int  `toml:"height"`
	ThemeColors bool `toml:"theme_colors"`
}

// View is the visible canvas area used when framing the result.
type View struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Layout overrides element width and spacing.
type Layout struct {
	Width          float64 `toml:"width"`
	HeadingSpacing float64 `toml:"heading_spacing"`
	BodySpacing    float64 `toml:"body_spacing"`
}

// Output controls where rendered scenes go.
type Output struct {
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
}

// Log controls verbosity.
type Log struct {
	Verbose bool `toml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	lo := layout.DefaultOptions()
	return Config{
		Fonts:  Fonts{Dir: "fonts", Family: layout.DefaultFamily, System: true},
		UI:     UI{Width: 500, Height: 600, ThemeColors: true},
		View:   View{Width: 1440, Height: 900},
		Layout: Layout{Width: lo.Width, HeadingSpacing: lo.HeadingSpacing, BodySpacing: lo.BodySpacing},
		Output: Output{Format: "pdf", Dir: "."},
	}
}

// Load reads path on top of Default. An empty path or a missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	return Parse(data, cfg)
}

// Parse decodes data on top of base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, fmt.Errorf("解析配置失败: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, fmt.Errorf("未知配置项: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "pdf", "svg":
	default:
		return fmt.Errorf("output.format 必须是 pdf 或 svg，得到 %q", c.Output.Format)
	}
	if c.UI.Width < 0 || c.UI.Height < 0 || c.View.Width < 0 || c.View.Height < 0 {
		return fmt.Errorf("ui/view 尺寸不能为负数")
	}
	if c.Layout.Width < 0 || c.Layout.HeadingSpacing < 0 || c.Layout.BodySpacing < 0 {
		return fmt.Errorf("layout 取值不能为负数")
	}
	return nil
}

// UIOptions converts the panel settings for host.ShowUI.
func (c Config) UIOptions() host.UIOptions {
	return host.UIOptions{Width: c.UI.Width, Height: c.UI.Height, ThemeColors: c.UI.ThemeColors}
}

// LayoutOptions converts the layout settings for the accumulator.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		Width:          c.Layout.Width,
		HeadingSpacing: c.Layout.HeadingSpacing,
		BodySpacing:    c.Layout.BodySpacing,
	}
}
