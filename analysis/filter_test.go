package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/analysis"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/dataset"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

func filterFixture(t *testing.T) *analysis.MergedTable {
	t.Helper()
	tables := &dataset.Tables{
		Demographics: []models.Respondent{
			respondent("A", "Kigali", "Urban", 30, "Primary", 10000),
			respondent("B", "Kigali", "Rural", 31, "Primary", 20000),
			respondent("C", "North", "Urban", 32, "Primary", 30000),
			respondent("D", "North", "Rural", 33, "Primary", 40000),
			respondent("E", "South", "Rural", 34, "Primary", 50000),
		},
		Services: []models.ServiceUsage{
			usage("A", true, false, false, false, false, 5),
			usage("B", false, true, false, false, false, 5),
			usage("C", false, false, true, false, false, 5),
			usage("D", false, false, false, false, false, 5),
			usage("E", true, true, false, false, false, 5),
		},
	}
	merged, err := analysis.Prepare(tables)
	require.NoError(t, err)
	return merged
}

func viewIDs(v *analysis.FilteredView) []string {
	var ids []string
	v.Each(func(r *models.MergedRecord) {
		ids = append(ids, r.RespondentID)
	})
	return ids
}

func TestApplyFiltersProvinceMembership(t *testing.T) {
	merged := filterFixture(t)

	v := analysis.ApplyFilters(merged, map[string]bool{"Kigali": true, "South": true}, models.UrbanRuralAll)
	assert.Equal(t, []string{"A", "B", "E"}, viewIDs(v))
	assert.Equal(t, 3, v.Len())
}

func TestApplyFiltersEmptyProvinceSetSelectsNothing(t *testing.T) {
	merged := filterFixture(t)

	// the empty set is empty, not "all provinces" — for every
	// urban/rural setting
	for _, ur := range []models.UrbanRuralFilter{models.UrbanRuralAll, models.UrbanOnly, models.RuralOnly} {
		v := analysis.ApplyFilters(merged, map[string]bool{}, ur)
		assert.Equal(t, 0, v.Len())
		v = analysis.ApplyFilters(merged, nil, ur)
		assert.Equal(t, 0, v.Len())
	}
}

func TestApplyFiltersUrbanRural(t *testing.T) {
	merged := filterFixture(t)
	all := map[string]bool{"Kigali": true, "North": true, "South": true}

	assert.Equal(t, []string{"A", "C"}, viewIDs(analysis.ApplyFilters(merged, all, models.UrbanOnly)))
	assert.Equal(t, []string{"B", "D", "E"}, viewIDs(analysis.ApplyFilters(merged, all, models.RuralOnly)))
	assert.Equal(t, 5, analysis.ApplyFilters(merged, all, models.UrbanRuralAll).Len())
}

func TestApplyFiltersDoesNotMutateTable(t *testing.T) {
	merged := filterFixture(t)
	before := make([]models.MergedRecord, len(merged.Rows))
	copy(before, merged.Rows)

	analysis.ApplyFilters(merged, map[string]bool{"Kigali": true}, models.RuralOnly)
	analysis.ApplyFilters(merged, nil, models.UrbanOnly)

	assert.Equal(t, before, merged.Rows)
}
