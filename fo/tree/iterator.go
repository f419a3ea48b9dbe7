package tree

// RowIterator iterates over the row groups of a table part.
// A row group is a maximal run of consecutive rows linked by
// row-spanning cells.
type RowIterator struct {
	rows []*EffRow
	pos  int
}

// NewRowIterator returns an iterator over the given rows.
func NewRowIterator(rows []*EffRow) *RowIterator {
	return &RowIterator{rows: rows}
}

// NextRowGroup returns the next row group, or nil at the end of the part.
func (it *RowIterator) NextRowGroup() []*EffRow {
	if it.pos >= len(it.rows) {
		return nil
	}
	start := it.pos
	end := start // inclusive
	for r := start; r <= end; r++ {
		for _, pgu := range it.rows[r].PrimaryGridUnits() {
			if last := r + pgu.RowSpan() - 1; last > end {
				end = last
			}
		}
	}
	if end >= len(it.rows) {
		end = len(it.rows) - 1
	}
	it.pos = end + 1
	return it.rows[start:it.pos]
}
