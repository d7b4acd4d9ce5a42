// Package glyph resolves font families and supplies real font metrics for
// text bounds and glyph outlines for text-to-path conversion.
package glyph

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ErrFontNotFound is returned when a family is neither in the font directory
// nor one of the built-in generic families.
var ErrFontNotFound = errors.New("glyph: font not found")

// Library resolves font families to parsed fonts. Files in the font directory
// named after the family win over the embedded Go fonts, which serve the
// generic CSS families.
type Library struct {
	dir string

	mu    sync.Mutex
	fonts map[string]*sfnt.Font
}

// NewLibrary returns a library reading <family>.ttf files from dir. An empty
// dir uses the embedded fonts only.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir, fonts: make(map[string]*sfnt.Font)}
}

var defaultLibrary = NewLibrary("")

// Default returns the shared library of embedded fonts.
func Default() *Library { return defaultLibrary }

type variant struct {
	bold, italic bool
}

func variantOf(weight, style string) variant {
	v := variant{italic: style == "italic" || style == "oblique"}
	switch weight {
	case "bold", "bolder":
		v.bold = true
	default:
		if n, err := strconv.Atoi(weight); err == nil && n >= 600 {
			v.bold = true
		}
	}
	return v
}

func (v variant) suffix() string {
	switch {
	case v.bold && v.italic:
		return "-BoldItalic"
	case v.bold:
		return "-Bold"
	case v.italic:
		return "-Italic"
	}
	return ""
}

// Font returns the font for family in the given CSS weight and style.
func (l *Library) Font(family, weight, style string) (*sfnt.Font, error) {
	family = strings.TrimSpace(strings.Trim(family, `"'`))
	v := variantOf(weight, style)
	key := strings.ToLower(family) + v.suffix()

	l.mu.Lock()
	defer l.mu.Unlock()
	if f, ok := l.fonts[key]; ok {
		return f, nil
	}
	data, err := l.load(family, v)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse %q: %w", family, err)
	}
	l.fonts[key] = f
	return f, nil
}

// FontOrDefault is Font falling back to the embedded sans-serif face.
func (l *Library) FontOrDefault(family, weight, style string) *sfnt.Font {
	if f, err := l.Font(family, weight, style); err == nil {
		return f
	}
	f, err := l.Font("sans-serif", weight, style)
	if err != nil {
		// the embedded fonts always parse
		panic(err)
	}
	return f
}

func (l *Library) load(family string, v variant) ([]byte, error) {
	if l.dir != "" && family != "" {
		names := []string{family + v.suffix() + ".ttf", family + ".ttf"}
		if lower := strings.ToLower(family); lower != family {
			names = append(names, lower+v.suffix()+".ttf", lower+".ttf")
		}
		for _, name := range names {
			data, err := os.ReadFile(filepath.Join(l.dir, name))
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("glyph: read %s: %w", name, err)
			}
		}
	}
	if data, ok := builtin(family, v); ok {
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrFontNotFound, family)
}

func builtin(family string, v variant) ([]byte, bool) {
	switch strings.ToLower(family) {
	case "", "sans-serif", "serif", "system-ui", "go":
		switch {
		case v.bold && v.italic:
			return gobolditalic.TTF, true
		case v.bold:
			return gobold.TTF, true
		case v.italic:
			return goitalic.TTF, true
		}
		return goregular.TTF, true
	case "monospace", "go mono":
		switch {
		case v.bold && v.italic:
			return gomonobolditalic.TTF, true
		case v.bold:
			return gomonobold.TTF, true
		case v.italic:
			return gomonoitalic.TTF, true
		}
		return gomono.TTF, true
	}
	return nil, false
}
