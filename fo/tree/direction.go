package tree

import (
	"github.com/benoitkugler/textlayout/language"
	"golang.org/x/text/unicode/bidi"

	pr "github.com/benoitkugler/folayout/fo/properties"
)

// primary language subtags written from right to left
var rtlLanguages = [...]language.Language{"ar", "he", "iw", "fa", "ur", "yi", "ps", "sd", "dv"}

func isRTLLanguage(lang language.Language) bool {
	for _, root := range rtlLanguages {
		if lang.IsDerivedFrom(root) {
			return true
		}
	}
	return false
}

// firstStrongDirection returns the direction of the first
// strong character of text, and false if there is none.
func firstStrongDirection(text string) (pr.Direction, bool) {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return pr.LTR, true
		case bidi.R, bidi.AL:
			return pr.RTL, true
		}
	}
	return pr.LTR, false
}

// ColumnProgression returns the direction in which the columns
// of the table are stacked.
// For writing-mode="auto", the first strong character of the
// table content decides, then the language of the table.
func (t *Table) ColumnProgression() pr.Direction {
	if t.WritingMode != pr.WritingModeAuto {
		return t.WritingMode.ColumnProgression()
	}
	for _, part := range t.Parts() {
		for _, row := range part.Rows {
			for _, cell := range row.Cells {
				for _, block := range cell.Content {
					if dir, ok := firstStrongDirection(block.Text); ok {
						return dir
					}
				}
			}
		}
	}
	if isRTLLanguage(t.Lang) {
		return pr.RTL
	}
	return pr.LTR
}
