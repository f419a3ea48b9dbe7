package layout

import (
	"fmt"

	"github.com/benoitkugler/folayout/fo/knuth"
	"github.com/benoitkugler/folayout/fo/tree"
)

// TableContentPosition is attached to the box of a row.
type TableContentPosition struct {
	Row             *tree.EffRow
	FirstInRowGroup bool
	LastInRowGroup  bool
}

func (p *TableContentPosition) Index() int { return p.Row.Index }

func (p *TableContentPosition) String() string {
	return fmt.Sprintf("TableContentPosition(%s row %d)", p.Row.Part.Kind, p.Row.Index)
}

// TableHeaderFooterPosition is attached to the box standing for the
// whole header or footer; its elements are unpacked when adding areas.
type TableHeaderFooterPosition struct {
	Header   bool
	Elements []knuth.Element
}

func (p *TableHeaderFooterPosition) Index() int { return -1 }

func (p *TableHeaderFooterPosition) String() string {
	if p.Header {
		return fmt.Sprintf("TableHeaderFooterPosition(header, %d elements)", len(p.Elements))
	}
	return fmt.Sprintf("TableHeaderFooterPosition(footer, %d elements)", len(p.Elements))
}

// TableHFPenaltyPosition is attached to the breaks of the body, when the
// header or the footer are repeated : if the page breaks there, the
// page is framed by the repeated header and footer.
type TableHFPenaltyPosition struct {
	HeaderElements []knuth.Element
	FooterElements []knuth.Element
	Row            *tree.EffRow
}

func (p *TableHFPenaltyPosition) Index() int { return p.Row.Index }

func (p *TableHFPenaltyPosition) String() string {
	return fmt.Sprintf("TableHFPenaltyPosition(row %d)", p.Row.Index)
}

// tablePosition is used by auxiliary elements.
type tablePosition struct{}

func (tablePosition) Index() int { return -1 }

func (tablePosition) String() string { return "TablePosition" }
