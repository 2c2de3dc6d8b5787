// Package fonts provides the font faces used to measure and draw cell text.
//
// The default face is Go Regular from golang.org/x/image/font/gofont, which is
// compiled into the binary, so rendering never depends on system fonts.
// Other TrueType/OpenType files can be loaded with [Load].
//
// Faces are passed to the renderer explicitly; nothing in tablecast reads a
// process-wide font.
package fonts

import (
	"image"
	"image/color"
	"os"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/tablecast/pkg/errors"
)

// DefaultSize is the size in pixels of the default face.
const DefaultSize = 16.0

// DefaultName is the family name of the bundled font.
const DefaultName = "Go Regular"

// Face measures and draws single-line strings with a font.Face.
// Text positions are the top-left corner of the line box, not the baseline.
type Face struct {
	face   font.Face
	ascent int
}

// New wraps a font.Face.
func New(face font.Face) *Face {
	return &Face{face: face, ascent: face.Metrics().Ascent.Ceil()}
}

// Measure returns the width and height in pixels of s.
// The height runs from the top of the ascent to the lowest inked pixel,
// so strings without descenders may be shorter than strings with them.
// The empty string measures 0x0.
func (f *Face) Measure(s string) (w, h int) {
	if s == "" {
		return 0, 0
	}
	bounds, advance := font.BoundString(f.face, s)
	return advance.Ceil(), f.ascent + max(0, bounds.Max.Y.Ceil())
}

// Draw renders s in color c with the top-left corner of its line box at (x, y).
func (f *Face) Draw(dst draw.Image, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.P(x, y+f.ascent),
	}
	d.DrawString(s)
}

// Metrics returns the metrics of the underlying face.
func (f *Face) Metrics() font.Metrics { return f.face.Metrics() }

// Close releases the underlying face.
func (f *Face) Close() error { return f.face.Close() }

// Parse builds a face of the given pixel size from TrueType or OpenType data.
func Parse(data []byte, size float64) (*Face, error) {
	if err := errors.ValidateFontSize(size); err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "create face")
	}
	return New(face), nil
}

// Load reads a font file and builds a face of the given pixel size.
func Load(path string, size float64) (*Face, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "read font %s", path)
	}
	face, err := Parse(data, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "font %s", path)
	}
	return face, nil
}

// Cache for the default face (parsed once on first access).
var (
	defaultFace     *Face
	defaultFaceErr  error
	defaultFaceOnce sync.Once
)

// Default returns the bundled Go Regular face at [DefaultSize].
// The result is cached after first computation and must not be closed.
func Default() (*Face, error) {
	defaultFaceOnce.Do(func() {
		defaultFace, defaultFaceErr = Parse(goregular.TTF, DefaultSize)
	})
	return defaultFace, defaultFaceErr
}

// Regular returns the bundled Go Regular face at size. The default size
// shares the face returned by [Default].
func Regular(size float64) (*Face, error) {
	if size == DefaultSize {
		return Default()
	}
	return Parse(goregular.TTF, size)
}

// Basic returns the fixed 7x13 bitmap face. Its metrics are exact integers,
// which makes it convenient for golden-size tests.
func Basic() *Face {
	return New(basicfont.Face7x13)
}
