package analysis

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

// FilteredView is a read-only subset of a MergedTable: a bitmap of row
// indices over the shared, immutable table. Building one never copies
// or mutates rows.
type FilteredView struct {
	table *MergedTable
	rows  *roaring.Bitmap
}

// ApplyFilters selects the rows matching the dashboard's filter
// controls. An empty (or nil) province set selects nothing; that is a
// deliberate policy, not a default to "all provinces". The urban/rural
// filter matches the categorical value exactly and case-sensitively.
func ApplyFilters(t *MergedTable, provinces map[string]bool, urbanRural models.UrbanRuralFilter) *FilteredView {
	bm := roaring.New()
	for i, r := range t.Rows {
		if !provinces[r.Province] {
			continue
		}
		if urbanRural != models.UrbanRuralAll && r.UrbanRural != string(urbanRural) {
			continue
		}
		bm.Add(uint32(i))
	}
	return &FilteredView{table: t, rows: bm}
}

// Len reports how many rows the view contains.
func (v *FilteredView) Len() int {
	return int(v.rows.GetCardinality())
}

// Each calls fn for every row in the view, in table order.
func (v *FilteredView) Each(fn func(r *models.MergedRecord)) {
	it := v.rows.Iterator()
	for it.HasNext() {
		fn(&v.table.Rows[it.Next()])
	}
}
