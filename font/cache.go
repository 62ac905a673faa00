package font

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// maxScanDepth limits recursive directory traversal when scanning for
// fonts.
const maxScanDepth = 3

// maxFileSize limits the size of individual font files loaded into
// memory.
const maxFileSize = 20 << 20 // 20 MB

// faceKey identifies a measurement face by family, size, and style.
type faceKey struct {
	family string
	size   float64
	bold   bool
	italic bool
}

// Cache holds parsed font outlines and measurement faces. Construct it
// with NewCache and share it by reference; the zero value is not
// usable.
type Cache struct {
	mu     sync.RWMutex              // guards fonts and faces
	fonts  map[string]*opentype.Font // lowercase family (+style suffix) -> outline
	faces  map[faceKey]xfont.Face
	source Source

	// measurement faces share sfnt buffers, so glyph access is
	// serialized separately from map access
	measureMu sync.Mutex
}

// NewCache returns a cache pre-loaded with the bundled Go font
// families (Go, Go Mono, plus bold and italic variants), so
// measurement works with no registration at all.
func NewCache() *Cache {
	c := &Cache{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]xfont.Face),
	}

	bundled := []struct {
		name string
		data []byte
	}{
		{"go", goregular.TTF},
		{"go bold", gobold.TTF},
		{"go italic", goitalic.TTF},
		{"go bold italic", gobolditalic.TTF},
		{"go mono", gomono.TTF},
		{"go mono bold", gomonobold.TTF},
	}
	for _, b := range bundled {
		f, err := opentype.Parse(b.data)
		if err != nil {
			continue
		}
		c.fonts[b.name] = f
	}
	return c
}

// SetSource installs the outline source used by Warm.
func (c *Cache) SetSource(s Source) {
	c.mu.Lock()
	c.source = s
	c.mu.Unlock()
}

// RegisterData parses a TrueType/OpenType outline and registers it
// under the given family name as well as the names in its own name
// table.
func (c *Cache) RegisterData(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing font %s: %w", family, err)
	}
	c.mu.Lock()
	c.fonts[strings.ToLower(family)] = f
	c.registerFamilyName(f)
	c.mu.Unlock()
	return nil
}

// RegisterFile loads a font file and registers it under the given
// family name.
func (c *Cache) RegisterFile(family, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.RegisterData(family, data)
}

// ScanDir walks a directory tree registering every readable .ttf and
// .otf file by filename and internal family name. Unreadable or
// oversized files are skipped.
func (c *Cache) ScanDir(dir string) {
	c.scanDir(dir, 0)
}

func (c *Cache) scanDir(dir string, depth int) {
	if depth > maxScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			c.scanDir(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() > maxFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		base := strings.TrimSuffix(lower, filepath.Ext(lower))
		c.mu.Lock()
		c.fonts[base] = f
		c.registerFamilyName(f)
		c.mu.Unlock()
	}
}

// registerFamilyName registers an outline under the family and full
// names from its sfnt name table. Callers must hold c.mu.
func (c *Cache) registerFamilyName(f *opentype.Font) {
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil && family != "" {
		c.fonts[strings.ToLower(family)] = f
	}
	if full, err := f.Name(nil, sfnt.NameIDFull); err == nil && full != "" {
		c.fonts[strings.ToLower(full)] = f
	}
}

// Measurable reports whether the family has a registered outline.
func (c *Cache) Measurable(family string) bool {
	return c.findFont(family, false, false) != nil
}

// Measure returns the advance width and line height, in pixels at 72
// DPI, of text laid out at the given point size. ok is false when the
// family has no registered outline; the caller decides how to estimate
// instead.
func (c *Cache) Measure(text, family string, size float64, bold, italic bool) (w, h float64, ok bool) {
	if size <= 0 {
		return 0, 0, false
	}
	face := c.measureFace(family, size, bold, italic)
	if face == nil {
		return 0, 0, false
	}

	c.measureMu.Lock()
	advance := measureKerned(face, text)
	metrics := face.Metrics()
	c.measureMu.Unlock()

	height := metrics.Ascent + metrics.Descent
	return fixedToFloat(advance), fixedToFloat(height), true
}

// measureFace returns a cached unhinted face for the family and style,
// or nil when the family is unknown. PowerPoint lays text out with
// unhinted DirectWrite metrics, so measurement faces use HintingNone.
func (c *Cache) measureFace(family string, size float64, bold, italic bool) xfont.Face {
	key := faceKey{family: strings.ToLower(family), size: size, bold: bold, italic: italic}

	c.mu.RLock()
	if face, ok := c.faces[key]; ok {
		c.mu.RUnlock()
		return face
	}
	c.mu.RUnlock()

	f := c.findFont(family, bold, italic)
	if f == nil {
		return nil
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil
	}

	c.mu.Lock()
	c.faces[key] = face
	c.mu.Unlock()
	return face
}

// findFont looks up an outline by family, trying style-suffixed
// registrations first ("arial bold", "arialbd") and falling back to
// the base family.
func (c *Cache) findFont(family string, bold, italic bool) *opentype.Font {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lower := strings.ToLower(family)

	if bold && italic {
		for _, suffix := range []string{" bold italic", " bolditalic", "bi", "z"} {
			if f, ok := c.fonts[lower+suffix]; ok {
				return f
			}
		}
	}
	if bold {
		for _, suffix := range []string{" bold", "bd", "b"} {
			if f, ok := c.fonts[lower+suffix]; ok {
				return f
			}
		}
	}
	if italic {
		for _, suffix := range []string{" italic", " it", "i"} {
			if f, ok := c.fonts[lower+suffix]; ok {
				return f
			}
		}
	}
	if f, ok := c.fonts[lower]; ok {
		return f
	}
	return nil
}

// measureKerned sums glyph advances plus kerning adjustments, which
// tracks DirectWrite layout more closely than font.MeasureString.
func measureKerned(face xfont.Face, s string) fixed.Int26_6 {
	var advance fixed.Int26_6
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			advance += face.Kern(prev, r)
		}
		if a, ok := face.GlyphAdvance(r); ok {
			advance += a
		}
		prev = r
	}
	return advance
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
