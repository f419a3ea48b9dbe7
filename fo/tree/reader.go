package tree

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/textlayout/language"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/benoitkugler/folayout/fo/events"
	pr "github.com/benoitkugler/folayout/fo/properties"
)

// elementKind is the formatting object associated to a tag,
// either in the fo: namespace or as its HTML equivalent.
type elementKind uint8

const (
	otherElement elementKind = iota
	tableElement
	columnElement
	headerElement
	footerElement
	bodyElement
	rowElement
	cellElement
	blockElement
	graphicElement
	footnoteElement
	lineBreakElement
)

var foElements = map[string]elementKind{
	"table":               tableElement,
	"table-column":        columnElement,
	"table-header":        headerElement,
	"table-footer":        footerElement,
	"table-body":          bodyElement,
	"table-row":           rowElement,
	"table-cell":          cellElement,
	"block":               blockElement,
	"external-graphic":    graphicElement,
	"footnote":            footnoteElement,
}

var htmlElements = map[atom.Atom]elementKind{
	atom.Table: tableElement,
	atom.Col:   columnElement,
	atom.Thead: headerElement,
	atom.Tfoot: footerElement,
	atom.Tbody: bodyElement,
	atom.Tr:    rowElement,
	atom.Td:    cellElement,
	atom.Th:    cellElement,
	atom.P:     blockElement,
	atom.Div:   blockElement,
	atom.Img:   graphicElement,
	atom.Br:    lineBreakElement,
}

func lookupElement(name string) elementKind {
	if local, ok := strings.CutPrefix(name, "fo:"); ok {
		return foElements[local]
	}
	return htmlElements[atom.Lookup([]byte(name))]
}

// attributes maps attribute names to values. The HTML "style"
// attribute is expanded into the map.
type attributes map[string]string

func readAttributes(z *html.Tokenizer, hasAttr bool) attributes {
	out := attributes{}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		out[string(key)] = string(val)
	}
	if style, ok := out["style"]; ok {
		for _, decl := range strings.Split(style, ";") {
			name, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			out[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
		}
	}
	return out
}

// first returns the value of the first attribute present.
func (attrs attributes) first(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := attrs[name]; ok {
			return v, true
		}
	}
	return "", false
}

// reader builds a [Table] from a token stream.
type reader struct {
	bc       *events.Broadcaster
	table    *Table
	part     *TablePart
	row      *TableRow
	cell     *TableCell
	footnote *Footnote
	text     strings.Builder // pending text of the current block

	depth     int // nesting of the first table
	skipDepth int // nesting of ignored nested tables
}

func (rd *reader) invalid(property, value string, err error) {
	rd.bc.Broadcast(events.InvalidPropertyEvent(property, value, err))
}

func (rd *reader) fontSize() int {
	if rd.cell != nil && rd.cell.FontSize != 0 {
		return rd.cell.FontSize
	}
	return rd.table.FontSize
}

func (rd *reader) length(attrs attributes, names ...string) (pr.Length, bool) {
	v, ok := attrs.first(names...)
	if !ok {
		return pr.AutoLength, false
	}
	l, err := pr.ParseLength(v, rd.fontSize())
	if err != nil {
		rd.invalid(names[0], v, err)
		return pr.AutoLength, false
	}
	return l, !l.IsAuto()
}

// absolute returns the value of a length attribute in millipoints,
// percentages being resolved against base.
func (rd *reader) absolute(attrs attributes, base int, names ...string) (int, bool) {
	l, ok := rd.length(attrs, names...)
	if !ok {
		return 0, false
	}
	return l.Resolve(base), true
}

func (rd *reader) integer(attrs attributes, names ...string) (int, bool) {
	v, ok := attrs.first(names...)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i < 0 {
		rd.invalid(names[0], v, fmt.Errorf("expected a positive integer"))
		return 0, false
	}
	return i, true
}

func (rd *reader) keep(attrs attributes, name string) pr.Keep {
	var compound []string
	for _, context := range [...]string{"within-page", "within-column", "within-line"} {
		if v, ok := attrs[name+"."+context]; ok {
			compound = append(compound, context+":"+v)
		}
	}
	value, ok := attrs[name]
	if len(compound) != 0 {
		value, ok = strings.Join(compound, ";"), true
	}
	if !ok {
		return pr.KeepAuto
	}
	k, err := pr.ParseKeep(value)
	if err != nil {
		rd.invalid(name, value, err)
		return pr.KeepAuto
	}
	return k
}

// keepTogether also accepts the CSS page-break-inside and break-inside properties.
func (rd *reader) keepTogether(attrs attributes) pr.Keep {
	if v, ok := attrs.first("break-inside", "page-break-inside"); ok && strings.TrimSpace(v) == "avoid" {
		return pr.KeepAlways
	}
	return rd.keep(attrs, "keep-together")
}

func (rd *reader) breakClass(attrs attributes, name string) pr.BreakClass {
	v, ok := attrs.first(name, "page-"+name)
	if !ok {
		return pr.BreakAuto
	}
	bc, err := pr.ParseBreak(v)
	if err != nil {
		rd.invalid(name, v, err)
		return pr.BreakAuto
	}
	return bc
}

func (rd *reader) lang(attrs attributes) language.Language {
	if v, ok := attrs.first("xml:lang", "lang", "language"); ok {
		return language.NewLanguage(v)
	}
	return ""
}

func (rd *reader) startTable(attrs attributes) {
	t := rd.table
	if v, ok := attrs["font-size"]; ok {
		if l, err := pr.ParseLength(v, t.FontSize); err == nil && !l.IsAuto() {
			t.FontSize = l.Resolve(t.FontSize)
		} else {
			rd.invalid("font-size", v, err)
		}
	}
	if v, ok := attrs["table-layout"]; ok {
		switch strings.TrimSpace(v) {
		case "fixed":
			t.AutoLayout = false
		case "auto":
			t.AutoLayout = true
		default:
			rd.invalid("table-layout", v, errors.New("expected auto or fixed"))
		}
	}
	if l, ok := rd.length(attrs, "inline-progression-dimension", "width"); ok {
		t.Width = l
	}
	if v, ok := attrs.first("writing-mode", "dir", "direction"); ok {
		wm, err := pr.ParseWritingMode(v)
		if err != nil {
			rd.invalid("writing-mode", v, err)
		}
		t.WritingMode = wm
	}
	t.Lang = rd.lang(attrs)
	t.KeepTogether = rd.keepTogether(attrs)
	t.KeepWithNext = rd.keep(attrs, "keep-with-next")
	t.KeepWithPrevious = rd.keep(attrs, "keep-with-previous")
	t.BreakBefore = rd.breakClass(attrs, "break-before")
	t.BreakAfter = rd.breakClass(attrs, "break-after")
	t.OmitHeaderAtBreak = strings.TrimSpace(attrs["table-omit-header-at-break"]) == "true"
	t.OmitFooterAtBreak = strings.TrimSpace(attrs["table-omit-footer-at-break"]) == "true"
	t.WidowContentLimit, _ = rd.absolute(attrs, 0, "widow-content-limit")
	t.OrphanContentLimit, _ = rd.absolute(attrs, 0, "orphan-content-limit")
	t.StartIndent, _ = rd.absolute(attrs, 0, "start-indent", "margin-left")
	t.EndIndent, _ = rd.absolute(attrs, 0, "end-indent", "margin-right")

	if v, ok := attrs["border-separation.block-progression-direction"]; ok {
		t.BorderSeparationBPD, _ = rd.absolute(attributes{"v": v}, 0, "v")
	} else if v, ok := attrs.first("border-separation", "border-spacing"); ok {
		// the second value, if any, is the block-progression component
		fields := strings.Fields(v)
		t.BorderSeparationBPD, _ = rd.absolute(attributes{"v": fields[len(fields)-1]}, 0, "v")
	} else if v, ok := attrs["cellspacing"]; ok {
		t.BorderSeparationBPD, _ = rd.absolute(attributes{"v": v}, 0, "v")
	}
}

func (rd *reader) addColumn(attrs attributes) {
	var width *pr.ColumnWidth
	if v, ok := attrs.first("column-width", "width"); ok {
		cw, ok, err := pr.ParseColumnWidth(v, rd.fontSize())
		if err != nil {
			rd.invalid("column-width", v, err)
		} else if ok {
			width = &cw
		}
	}
	col := NewTableColumn(width)
	if n, ok := rd.integer(attrs, "number-columns-repeated", "span"); ok && n > 0 {
		col.NumberColumnsRepeated = n
	}
	if n, ok := rd.integer(attrs, "column-number"); ok {
		col.ColumnNumber = n
	}
	rd.table.AddColumn(col)
}

func (rd *reader) startPart(kind PartKind) {
	part := &TablePart{Kind: kind}
	switch kind {
	case Header:
		if rd.table.Header != nil {
			rd.invalid("table-header", "", errors.New("duplicate header, rows are appended"))
			part = rd.table.Header
		}
		rd.table.Header = part
	case Footer:
		if rd.table.Footer != nil {
			rd.invalid("table-footer", "", errors.New("duplicate footer, rows are appended"))
			part = rd.table.Footer
		}
		rd.table.Footer = part
	default:
		rd.table.Bodies = append(rd.table.Bodies, part)
	}
	rd.part = part
}

func (rd *reader) startRow(attrs attributes) {
	if rd.part == nil { // HTML tables may omit tbody
		rd.startPart(Body)
	}
	row := NewTableRow()
	if l, ok := rd.length(attrs, "block-progression-dimension", "height"); ok {
		row.Height = l
	}
	row.KeepWithNext = rd.keep(attrs, "keep-with-next")
	row.KeepWithPrevious = rd.keep(attrs, "keep-with-previous")
	row.BreakBefore = rd.breakClass(attrs, "break-before")
	row.BreakAfter = rd.breakClass(attrs, "break-after")
	rd.part.Rows = append(rd.part.Rows, row)
	rd.row = row
}

func (rd *reader) startCell(attrs attributes) {
	if rd.row == nil { // FO tables may omit table-row, using starts-row/ends-row
		rd.startRow(attributes{})
	}
	cell := NewTableCell()
	if v, ok := attrs["font-size"]; ok {
		if l, err := pr.ParseLength(v, rd.table.FontSize); err == nil && !l.IsAuto() {
			cell.FontSize = l.Resolve(rd.table.FontSize)
		} else {
			rd.invalid("font-size", v, err)
		}
	}
	rd.cell = cell
	if n, ok := rd.integer(attrs, "number-columns-spanned", "colspan"); ok && n > 0 {
		cell.NumberColumnsSpanned = n
	}
	if n, ok := rd.integer(attrs, "number-rows-spanned", "rowspan"); ok && n > 0 {
		cell.NumberRowsSpanned = n
	}
	if n, ok := rd.integer(attrs, "column-number"); ok {
		cell.ColumnNumber = n
	}
	if p, ok := rd.absolute(attrs, 0, "padding"); ok {
		cell.PaddingStart, cell.PaddingEnd, cell.PaddingBefore, cell.PaddingAfter = p, p, p, p
	} else if p, ok := rd.absolute(attrs, 0, "cellpadding"); ok {
		cell.PaddingStart, cell.PaddingEnd, cell.PaddingBefore, cell.PaddingAfter = p, p, p, p
	}
	if p, ok := rd.absolute(attrs, 0, "padding-start", "padding-left"); ok {
		cell.PaddingStart = p
	}
	if p, ok := rd.absolute(attrs, 0, "padding-end", "padding-right"); ok {
		cell.PaddingEnd = p
	}
	if p, ok := rd.absolute(attrs, 0, "padding-before", "padding-top"); ok {
		cell.PaddingBefore = p
	}
	if p, ok := rd.absolute(attrs, 0, "padding-after", "padding-bottom"); ok {
		cell.PaddingAfter = p
	}
	cell.Lang = rd.lang(attrs)
	rd.row.Cells = append(rd.row.Cells, cell)
	if strings.TrimSpace(attrs["ends-row"]) == "true" {
		rd.row = nil
	}
}

func (rd *reader) addGraphic(attrs attributes) {
	if rd.cell == nil {
		return
	}
	rd.flushText()
	w, _ := rd.absolute(attrs, 0, "content-width", "width")
	h, _ := rd.absolute(attrs, 0, "content-height", "height")
	rd.appendBlock(Block{Width: w, Height: h})
}

func (rd *reader) appendBlock(b Block) {
	if rd.footnote != nil {
		rd.footnote.Content = append(rd.footnote.Content, b)
	} else {
		rd.cell.Content = append(rd.cell.Content, b)
	}
}

// flushText closes the current paragraph.
func (rd *reader) flushText() {
	text := strings.Join(strings.Fields(rd.text.String()), " ")
	rd.text.Reset()
	if text == "" || rd.cell == nil {
		return
	}
	rd.appendBlock(Block{Text: text})
}

func (rd *reader) start(kind elementKind, attrs attributes) {
	switch kind {
	case columnElement:
		rd.addColumn(attrs)
	case headerElement:
		rd.startPart(Header)
	case footerElement:
		rd.startPart(Footer)
	case bodyElement:
		rd.startPart(Body)
	case rowElement:
		rd.startRow(attrs)
	case cellElement:
		rd.startCell(attrs)
	case blockElement, lineBreakElement:
		rd.flushText()
	case graphicElement:
		rd.addGraphic(attrs)
	case footnoteElement:
		rd.flushText()
		if rd.cell != nil {
			rd.cell.Footnotes = append(rd.cell.Footnotes, Footnote{})
			rd.footnote = &rd.cell.Footnotes[len(rd.cell.Footnotes)-1]
		}
	}
}

func (rd *reader) end(kind elementKind) {
	switch kind {
	case headerElement, footerElement, bodyElement:
		rd.part, rd.row = nil, nil
	case rowElement:
		rd.row = nil
	case cellElement:
		rd.flushText()
		rd.cell, rd.footnote = nil, nil
	case blockElement:
		rd.flushText()
	case footnoteElement:
		rd.flushText()
		rd.footnote = nil
	}
}

// Parse reads the first table found in the input, written either
// with fo: elements (fo:table, fo:table-column, fo:table-body, ...)
// or with HTML elements (table, col, tbody, tr, td, ...).
// Nested tables are ignored.
// Invalid property values are reported to bc (which may be nil),
// and replaced by their initial value.
// The returned table is finalized.
func Parse(r io.Reader, bc *events.Broadcaster) (*Table, error) {
	return ParseWithFontSize(r, 12*pr.Pt, bc)
}

// ParseWithFontSize is the same as [Parse], but uses fontSize as the
// font size of a table not specifying it.
func ParseWithFontSize(r io.Reader, fontSize int, bc *events.Broadcaster) (*Table, error) {
	rd := reader{bc: bc}
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("invalid table markup: %s", err)
			}
			if rd.table == nil {
				return nil, errors.New("no table found in input")
			}
			if rd.depth != 0 {
				return nil, errors.New("unexpected end of input : table is not closed")
			}
			if err := rd.table.Finalize(); err != nil {
				return nil, err
			}
			return rd.table, nil
		case html.TextToken:
			if rd.cell != nil && rd.skipDepth == 0 {
				rd.text.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			kind := lookupElement(string(name))
			if kind == otherElement {
				continue
			}
			attrs := readAttributes(z, hasAttr)
			selfClosing := tt == html.SelfClosingTagToken || kind == columnElement && !strings.HasPrefix(string(name), "fo:") ||
				kind == graphicElement || kind == lineBreakElement
			if kind == tableElement {
				if rd.table != nil { // nested or following table
					if rd.depth > 0 && !selfClosing {
						rd.skipDepth++
					}
					continue
				}
				rd.table = NewTable()
				rd.table.FontSize = fontSize
				rd.startTable(attrs)
				if !selfClosing {
					rd.depth++
				}
				continue
			}
			if rd.depth == 0 || rd.skipDepth > 0 {
				continue
			}
			rd.start(kind, attrs)
			if selfClosing {
				rd.end(kind)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			kind := lookupElement(string(name))
			if kind == tableElement {
				if rd.skipDepth > 0 {
					rd.skipDepth--
				} else if rd.depth > 0 {
					rd.depth--
				}
				continue
			}
			if rd.depth == 0 || rd.skipDepth > 0 {
				continue
			}
			rd.end(kind)
		}
	}
}
