package canvashost

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/caseframe/fonts"
	"github.com/ByLCY/caseframe/layout"
)

var textColor = canvas.RGBA(30.0/255.0, 30.0/255.0, 30.0/255.0, 1.0)

type fontFamilyEntry struct {
	family   *canvas.FontFamily
	style    canvas.FontStyle
	fallback bool
}

// fontRegistry caches one canvas font family per requested (family, style).
type fontRegistry struct {
	mu        sync.Mutex
	families  map[layout.FontName]*fontFamilyEntry
	requests  map[layout.FontName]bool
	fallbacks map[canvas.FontStyle]*canvas.FontFamily
}

func newFontRegistry() *fontRegistry {
	return &fontRegistry{
		families:  map[layout.FontName]*fontFamilyEntry{},
		requests:  map[layout.FontName]bool{},
		fallbacks: map[canvas.FontStyle]*canvas.FontFamily{},
	}
}

func (r *fontRegistry) requested(name layout.FontName) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[name]
}

func (r *fontRegistry) load(name layout.FontName, dir string, system bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[name] = true
	if entry, ok := r.families[name]; ok && !entry.fallback {
		return nil
	}

	style := parseFontStyle(name.Style)
	family := canvas.NewFontFamily(name.Family)
	loadErr := loadIntoFamily(family, name, style, dir, system)
	if loadErr == nil {
		r.families[name] = &fontFamilyEntry{family: family, style: style}
		return nil
	}

	fb, err := r.fallback(name.Style, style)
	if err != nil {
		return fmt.Errorf("%w (fallback: %v)", loadErr, err)
	}
	r.families[name] = &fontFamilyEntry{family: fb, style: style, fallback: true}
	return loadErr
}

// face returns a face for name at sizePt, falling back to the embedded
// regular font for fonts that were never loaded.
func (r *fontRegistry) face(name layout.FontName, sizePt float64) (*canvas.FontFace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.families[name]
	if !ok {
		style := parseFontStyle(name.Style)
		fb, err := r.fallback(name.Style, style)
		if err != nil {
			return nil, err
		}
		entry = &fontFamilyEntry{family: fb, style: style, fallback: true}
		r.families[name] = entry
	}
	return entry.family.Face(sizePt, color.Color(textColor), entry.style, canvas.FontNormal), nil
}

func (r *fontRegistry) fallback(weight string, style canvas.FontStyle) (*canvas.FontFamily, error) {
	if family, ok := r.fallbacks[style]; ok {
		return family, nil
	}
	data, err := fonts.Fallback(weight)
	if err != nil {
		if data, err = fonts.Fallback("Regular"); err != nil {
			return nil, err
		}
	}
	family := canvas.NewFontFamily(fonts.FallbackFamily + "-" + weight)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("加载内置回退字体失败: %w", err)
	}
	r.fallbacks[style] = family
	return family, nil
}

func loadIntoFamily(family *canvas.FontFamily, name layout.FontName, style canvas.FontStyle, dir string, system bool) error {
	if dir != "" {
		for _, path := range fontCandidates(dir, name) {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := family.LoadFont(data, 0, style); err != nil {
				return fmt.Errorf("解析字体文件 %s 失败: %w", path, err)
			}
			return nil
		}
	}
	if system {
		if err := family.LoadSystemFont(name.Family, style); err == nil {
			return nil
		}
	}
	return fmt.Errorf("font %s %s not available", name.Family, name.Style)
}

// fontCandidates lists file locations for a font, e.g. Inter-SemiBold.ttf
// and Inter/static/Inter-SemiBold.ttf.
func fontCandidates(dir string, name layout.FontName) []string {
	weight := strings.ReplaceAll(name.Style, " ", "")
	base := name.Family + "-" + weight
	var out []string
	for _, ext := range []string{".ttf", ".otf"} {
		out = append(out,
			filepath.Join(dir, base+ext),
			filepath.Join(dir, name.Family, "static", base+ext),
		)
	}
	return out
}

func parseFontStyle(style string) canvas.FontStyle {
	s := strings.ToLower(strings.NewReplacer(" ", "", "-", "").Replace(style))
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}
