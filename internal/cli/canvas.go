package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/ByLCY/caseframe/binding"
	"github.com/ByLCY/caseframe/block"
	"github.com/ByLCY/caseframe/config"
	canvashost "github.com/ByLCY/caseframe/host/canvas"
	"github.com/ByLCY/caseframe/importer"
	"github.com/ByLCY/caseframe/layout"
)

const defaultOutputName = "import"

// newCanvasHost builds the offline canvas host from cfg.
func newCanvasHost(ctx context.Context, cfg config.Config) *canvashost.Host {
	return canvashost.New(canvashost.Options{
		FontDir:     cfg.Fonts.Dir,
		SystemFonts: cfg.Fonts.System,
		ViewWidth:   cfg.View.Width,
		ViewHeight:  cfg.View.Height,
		Notifier:    printNotice,
		Logger:      loggerFromContext(ctx),
	})
}

// importerOptions maps cfg onto importer options. dataPath, when set, is a
// JSON document used for ${path} placeholders.
func importerOptions(ctx context.Context, cfg config.Config, dataPath string) (importer.Options, error) {
	opts := importer.Options{
		Family: cfg.Fonts.Family,
		Layout: cfg.LayoutOptions(),
		Logger: loggerFromContext(ctx),
	}
	if dataPath == "" {
		return opts, nil
	}
	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return opts, fmt.Errorf("读取绑定数据 %s 失败: %w", dataPath, err)
	}
	b, err := binding.Decode(raw)
	if err != nil {
		return opts, err
	}
	opts.Binder = b
	return opts, nil
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("读取标准输入失败: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("无法打开输入文件 %s: %w", name, err)
	}
	return data, nil
}

// outputPath returns explicit when set, else <dir>/<slug>.<format> where the
// slug comes from the first heading placed.
func outputPath(explicit, dir, format string, res *layout.Result) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(dir, sceneName(res)+"."+strings.ToLower(format))
}

func sceneName(res *layout.Result) string {
	if res == nil {
		return defaultOutputName
	}
	for _, p := range res.Placements {
		if !block.Type(p.BlockType).IsHeading() {
			continue
		}
		_, title, _ := strings.Cut(p.Name, ": ")
		if s := slug.Make(title); s != "" {
			return s
		}
	}
	return defaultOutputName
}

// writeScene renders every element on h and writes it to path.
func writeScene(h *canvashost.Host, path, format string) error {
	data, err := h.Render(format)
	if err != nil {
		return fmt.Errorf("渲染画布失败: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func writeDebug(res *layout.Result, path string) error {
	if res == nil {
		return nil
	}
	if err := layout.WriteDebugJSON(res, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
