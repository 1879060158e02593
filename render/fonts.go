package render

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ByLCY/signboard/layout"
)

// defaultFontPath is the system font discovered once per process and
// read-only thereafter. Empty when no candidate exists.
var defaultFontPath = sync.OnceValue(findDefaultFont)

func findDefaultFont() string {
	var candidates []string
	switch runtime.GOOS {
	case "windows":
		candidates = []string{
			`C:\Windows\Fonts\Arial.ttf`,
			`C:\Windows\Fonts\arial.ttf`,
			`C:\Windows\Fonts\Calibri.ttf`,
			`C:\Windows\Fonts\calibri.ttf`,
			`C:\Windows\Fonts\Verdana.ttf`,
			`C:\Windows\Fonts\verdana.ttf`,
			`C:\Windows\Fonts\Tahoma.ttf`,
			`C:\Windows\Fonts\tahoma.ttf`,
		}
	case "darwin":
		candidates = []string{
			"/System/Library/Fonts/Helvetica.ttc",
			"/Library/Fonts/Arial.ttf",
			"/System/Library/Fonts/Avenir.ttc",
		}
	default:
		candidates = []string{
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/ubuntu/Ubuntu-R.ttf",
		}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

type faceKey struct {
	size   int
	bold   bool
	italic bool
}

// FontSet resolves faces for one render call. Every lookup falls through
// the chain requested path -> system default -> embedded Go fonts ->
// unsized bitmap face, so resolution never fails. Faces are cached per
// (size, style); parsed files are cached per path. A FontSet is not safe
// for concurrent use and must not outlive its render call.
type FontSet struct {
	path  string // requested font path, may be empty
	faces map[faceKey]font.Face
	fonts map[string]*opentype.Font // nil entries record paths that failed
}

var _ layout.FaceSource = (*FontSet)(nil)

// NewFontSet creates a resolver rooted at the requested font path.
func NewFontSet(path string) *FontSet {
	return &FontSet{
		path:  path,
		faces: map[faceKey]font.Face{},
		fonts: map[string]*opentype.Font{},
	}
}

// Face returns a drawable face for the style at the given size. The
// terminal fallback is basicfont.Face7x13, which ignores size; callers
// must tolerate that.
func (fs *FontSet) Face(size int, bold, italic bool) font.Face {
	key := faceKey{size: size, bold: bold, italic: italic}
	if f, ok := fs.faces[key]; ok {
		return f
	}
	f := fs.resolve(size, bold, italic)
	fs.faces[key] = f
	return f
}

func (fs *FontSet) resolve(size int, bold, italic bool) font.Face {
	for _, path := range fs.candidates(bold, italic) {
		if f := fs.fileFace(path, size); f != nil {
			return f
		}
	}
	if f := builtinFace(size, bold, italic); f != nil {
		return f
	}
	return basicfont.Face7x13
}

// candidates lists font files to probe, style variants first. Variant
// probing mirrors common foundry naming: Font-Bold.ttf, FontB.ttf, etc.
func (fs *FontSet) candidates(bold, italic bool) []string {
	var out []string
	add := func(base string) {
		if base == "" {
			return
		}
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		var suffixes []string
		switch {
		case bold && italic:
			suffixes = []string{"-BoldItalic", "-BoldOblique", "bi", "BI"}
		case bold:
			suffixes = []string{"-Bold", "b", "B"}
		case italic:
			suffixes = []string{"-Italic", "-Oblique", "i", "I"}
		}
		for _, suf := range suffixes {
			out = append(out, stem+suf+".ttf")
		}
		out = append(out, base)
	}
	add(fs.path)
	add(defaultFontPath())
	return out
}

func (fs *FontSet) fileFace(path string, size int) font.Face {
	fnt, ok := fs.fonts[path]
	if !ok {
		fnt = parseFontFile(path)
		fs.fonts[path] = fnt
	}
	if fnt == nil {
		return nil
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	return face
}

func parseFontFile(path string) *opentype.Font {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if fnt, err := opentype.Parse(data); err == nil {
		return fnt
	}
	// .ttc collections: take the first font.
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil
	}
	fnt, err := coll.Font(0)
	if err != nil {
		return nil
	}
	return fnt
}

// builtinFonts are the embedded Go faces, parsed once per process. They
// honor both size and style, unlike the terminal bitmap fallback.
var builtinFonts = sync.OnceValue(func() map[faceKey]*opentype.Font {
	parse := func(data []byte) *opentype.Font {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil
		}
		return f
	}
	return map[faceKey]*opentype.Font{
		{}:                         parse(goregular.TTF),
		{bold: true}:               parse(gobold.TTF),
		{italic: true}:             parse(goitalic.TTF),
		{bold: true, italic: true}: parse(gobolditalic.TTF),
	}
})

func builtinFace(size int, bold, italic bool) font.Face {
	fnt := builtinFonts()[faceKey{bold: bold, italic: italic}]
	if fnt == nil {
		return nil
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	return face
}
