// Package text measures the content of table cells : it provides the
// width of the text (using an OpenType font) and its line breaking
// opportunities (using the Unicode line breaking algorithm).
package text

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/benoitkugler/folayout/fo/knuth"
	"github.com/benoitkugler/folayout/fo/layout"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	"github.com/benoitkugler/folayout/utils"
	"github.com/go-text/typesetting/segmenter"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var _ layout.Measurer = (*Measurer)(nil)

// DefaultFontSize is used for cells without font size.
const DefaultFontSize = 12 * pr.Pt

// Measurer lays out the text of the cells with one font, filling
// the lines greedily.
// It is not safe for concurrent use.
type Measurer struct {
	font      *opentype.Font
	faces     map[int]font.Face // by size, in millipoints
	segmenter segmenter.Segmenter

	// LineHeight is the height of a line, relative to the font size.
	LineHeight float64
}

// NewMeasurer parses the given font file content.
// If fontData is nil, the Go Regular font is used.
func NewMeasurer(fontData []byte) (*Measurer, error) {
	if fontData == nil {
		fontData = goregular.TTF
	}
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("invalid font: %w", err)
	}
	return &Measurer{font: f, faces: make(map[int]font.Face), LineHeight: 1.2}, nil
}

// LoadMeasurer is a convenience function loading the font from a file.
// An empty path selects the default font.
func LoadMeasurer(fontFile string) (*Measurer, error) {
	if fontFile == "" {
		return NewMeasurer(nil)
	}
	data, err := os.ReadFile(fontFile)
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	return NewMeasurer(data)
}

func (m *Measurer) face(size int) font.Face {
	if face, ok := m.faces[size]; ok {
		return face
	}
	// at 72 DPI, one pixel is one point
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    float64(size) / pr.Pt,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		panic(fmt.Sprintf("invalid face options: %s", err)) // the options are always valid
	}
	m.faces[size] = face
	return face
}

// Advance returns the width of s, in millipoints.
func (m *Measurer) Advance(s string, fontSize int) int {
	w := font.MeasureString(m.face(fontSize), s)
	return int(int64(w) * pr.Pt / 64)
}

// segment is the text between two line breaking opportunities
type segment struct {
	width     int // without the trailing spaces
	fullWidth int
	mandatory bool // the line must break after the segment
}

func (m *Measurer) segments(text string, fontSize int) []segment {
	var out []segment
	m.segmenter.Init([]rune(text))
	iter := m.segmenter.LineIterator()
	for iter.Next() {
		line := iter.Line()
		s := string(line.Text)
		trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
		out = append(out, segment{
			width:     m.Advance(trimmed, fontSize),
			fullWidth: m.Advance(s, fontSize),
			mandatory: strings.ContainsAny(s[len(trimmed):], "\n\r\u2028\u2029"),
		})
	}
	return out
}

// Measure implements [layout.Measurer]. Each line of text is a box,
// and fixed size blocks are one line of their own height.
func (m *Measurer) Measure(cell *tree.TableCell, refIPD int) layout.CellMeasure {
	fontSize := cell.FontSize
	if fontSize == 0 {
		fontSize = DefaultFontSize
	}
	lineHeight := utils.RoundInt(float64(fontSize) * m.LineHeight)

	var (
		out   layout.CellMeasure
		lines []int
	)
	for _, block := range cell.Content {
		if block.IsFixed() {
			out.IPD = utils.MaxInt(out.IPD, block.Width)
			out.MinIPD = utils.MaxInt(out.MinIPD, block.Width)
			lines = append(lines, block.Height)
			continue
		}

		started := false
		lineWidth := 0 // including the trailing spaces
		unbroken := 0  // width of the text since the last mandatory break
		for _, seg := range m.segments(block.Text, fontSize) {
			out.MinIPD = utils.MaxInt(out.MinIPD, seg.width)
			if started && lineWidth+seg.width > refIPD {
				lines = append(lines, lineHeight)
				lineWidth = 0
			}
			started = true
			out.IPD = utils.MaxInt(out.IPD, unbroken+seg.width)
			lineWidth += seg.fullWidth
			unbroken += seg.fullWidth
			if seg.mandatory {
				lines = append(lines, lineHeight)
				started, lineWidth, unbroken = false, 0, 0
			}
		}
		if started {
			lines = append(lines, lineHeight)
		}
	}

	for i, h := range lines {
		if i != 0 {
			out.Elements = append(out.Elements, knuth.NewPenalty(0, 0, false, pr.BreakAuto, nil))
		}
		out.Elements = append(out.Elements, knuth.NewBox(h, nil, false))
	}
	return out
}
