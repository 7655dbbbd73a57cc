package analysis_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/analysis"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/dataset"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

// summaryFixture builds the 100-respondent example: 60 with a bank
// account, 80 with mobile money, 85 formally included.
func summaryFixture(t *testing.T) *analysis.MergedTable {
	t.Helper()
	tables := &dataset.Tables{}
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("R%03d", i)
		urbanRural := "Urban"
		if i%2 == 0 {
			urbanRural = "Rural"
		}
		tables.Demographics = append(tables.Demographics,
			respondent(id, "Kigali", urbanRural, 20+i%40, "Primary", float64(10000+i*100)))

		var u models.ServiceUsage
		switch {
		case i < 60: // banked, also on mobile money
			u = usage(id, true, true, false, false, false, 6)
		case i < 80: // mobile money only
			u = usage(id, false, true, false, false, false, 4)
		case i < 85: // savings only
			u = usage(id, false, false, true, false, false, 4)
		default: // excluded
			u = usage(id, false, false, false, false, false, 2)
		}
		tables.Services = append(tables.Services, u)
	}
	merged, err := analysis.Prepare(tables)
	require.NoError(t, err)
	return merged
}

func allProvinces(rows []models.MergedRecord) map[string]bool {
	set := make(map[string]bool)
	for _, r := range rows {
		set[r.Province] = true
	}
	return set
}

func TestExecutiveSummaryExample(t *testing.T) {
	merged := summaryFixture(t)
	v := analysis.ApplyFilters(merged, allProvinces(merged.Rows), models.UrbanRuralAll)

	summary, err := analysis.ExecutiveSummary(v)
	require.NoError(t, err)

	assert.InDelta(t, 0.85, summary.InclusionRate, 1e-9)
	assert.Equal(t, 15, summary.ExcludedCount)
	assert.InDelta(t, 0.15, summary.ExcludedShare, 1e-9)
	assert.InDelta(t, 0.60, summary.BankingRate, 1e-9)
	assert.InDelta(t, 0.80, summary.MobileMoneyRate, 1e-9)
	assert.InDelta(t, 0.20, summary.MobileVsBankingGap, 1e-9)

	require.Len(t, summary.ServiceAdoption, 5)
	assert.Equal(t, "Bank Account", summary.ServiceAdoption[0].Service)
	assert.InDelta(t, 0.60, summary.ServiceAdoption[0].Rate, 1e-9)
	assert.InDelta(t, 0.05, summary.ServiceAdoption[2].Rate, 1e-9) // savings

	require.Len(t, summary.UrbanRural, 2)
	assert.Equal(t, "Rural", summary.UrbanRural[0].Category)
	assert.Equal(t, "Urban", summary.UrbanRural[1].Category)
	assert.Equal(t, 100, summary.UrbanRural[0].Count+summary.UrbanRural[1].Count)
}

func TestViewsFailOnEmptyInput(t *testing.T) {
	merged := summaryFixture(t)
	empty := analysis.ApplyFilters(merged, map[string]bool{}, models.UrbanRuralAll)

	views := map[string]func(*analysis.FilteredView) error{
		"executive":    func(v *analysis.FilteredView) error { _, err := analysis.ExecutiveSummary(v); return err },
		"demographics": func(v *analysis.FilteredView) error { _, err := analysis.Demographics(v); return err },
		"provincial":   func(v *analysis.FilteredView) error { _, err := analysis.Provincial(v); return err },
		"services":     func(v *analysis.FilteredView) error { _, err := analysis.ServiceUsage(v); return err },
		"segments":     func(v *analysis.FilteredView) error { _, err := analysis.Segmentation(v); return err },
		"policy":       func(v *analysis.FilteredView) error { _, err := analysis.PolicyInsights(v); return err },
	}
	for name, call := range views {
		err := call(empty)
		require.Error(t, err, name)
		var emptyErr *models.EmptyInputError
		assert.ErrorAs(t, err, &emptyErr, name)
	}
}

func TestDemographicsAgeGroupOrder(t *testing.T) {
	tables := &dataset.Tables{}
	ages := []int{60, 24, 50, 30, 40} // deliberately unsorted
	for i, age := range ages {
		id := fmt.Sprintf("R%d", i)
		tables.Demographics = append(tables.Demographics,
			respondent(id, "Kigali", "Urban", age, "Primary", float64(10000+i*100)))
		tables.Services = append(tables.Services, usage(id, true, false, false, false, false, 5))
	}
	merged, err := analysis.Prepare(tables)
	require.NoError(t, err)

	view, err := analysis.Demographics(analysis.ApplyFilters(merged, allProvinces(merged.Rows), models.UrbanRuralAll))
	require.NoError(t, err)

	var order []string
	for _, g := range view.ByAgeGroup {
		order = append(order, g.AgeGroup)
	}
	assert.Equal(t, []string{"18-25", "26-35", "36-45", "46-55", "56+"}, order)
}

func TestDemographicsByEducation(t *testing.T) {
	tables := &dataset.Tables{}
	rows := []struct {
		education string
		income    float64
		bank      bool
	}{
		{"Secondary", 40000, true},
		{"None", 10000, false},
		{"Secondary", 60000, true},
		{"Primary", 20000, false},
		{"Primary", 30000, true},
	}
	for i, row := range rows {
		id := fmt.Sprintf("R%d", i)
		tables.Demographics = append(tables.Demographics,
			respondent(id, "Kigali", "Urban", 30, row.education, row.income))
		tables.Services = append(tables.Services, usage(id, row.bank, false, false, false, false, float64(i)))
	}
	merged, err := analysis.Prepare(tables)
	require.NoError(t, err)

	view, err := analysis.Demographics(analysis.ApplyFilters(merged, allProvinces(merged.Rows), models.UrbanRuralAll))
	require.NoError(t, err)

	require.Len(t, view.ByEducation, 3)
	assert.Equal(t, "None", view.ByEducation[0].Education)
	assert.Equal(t, "Primary", view.ByEducation[1].Education)
	assert.Equal(t, "Secondary", view.ByEducation[2].Education)

	secondary := view.ByEducation[2]
	assert.Equal(t, 2, secondary.Count)
	assert.InDelta(t, 1.0, secondary.InclusionRate, 1e-9)
	assert.InDelta(t, 50000, secondary.AvgIncomeRWF, 1e-9)
}

func TestProvincialSortedByInclusionRateStable(t *testing.T) {
	tables := &dataset.Tables{}
	add := func(id, province string, included bool, income float64) {
		tables.Demographics = append(tables.Demographics,
			respondent(id, province, "Urban", 30, "Primary", income))
		tables.Services = append(tables.Services, usage(id, included, false, false, false, false, 5))
	}
	// Kigali 1.0, North 0.5, South 0.5 (tie with North), West 0.0
	add("A", "Kigali", true, 10000)
	add("B", "North", true, 20000)
	add("C", "North", false, 30000)
	add("D", "South", true, 40000)
	add("E", "South", false, 50000)
	add("F", "West", false, 60000)

	merged, err := analysis.Prepare(tables)
	require.NoError(t, err)

	view, err := analysis.Provincial(analysis.ApplyFilters(merged, allProvinces(merged.Rows), models.UrbanRuralAll))
	require.NoError(t, err)

	var order []string
	for _, p := range view.Provinces {
		order = append(order, p.Province)
	}
	// ascending by inclusion rate; the North/South tie keeps
	// first-appearance order
	assert.Equal(t, []string{"West", "North", "South", "Kigali"}, order)

	for i := 1; i < len(view.Provinces); i++ {
		assert.LessOrEqual(t, view.Provinces[i-1].InclusionRate, view.Provinces[i].InclusionRate)
	}
}

func TestServiceUsageHistogramHasAllBuckets(t *testing.T) {
	merged := summaryFixture(t)
	view, err := analysis.ServiceUsage(analysis.ApplyFilters(merged, allProvinces(merged.Rows), models.UrbanRuralAll))
	require.NoError(t, err)

	require.Len(t, view.CountDistribution, 6)
	total := 0
	for i, bucket := range view.CountDistribution {
		assert.Equal(t, i, bucket.Services)
		total += bucket.Count
	}
	assert.Equal(t, 100, total)
	// nobody in the fixture uses 3, 4 or 5 services
	assert.Zero(t, view.CountDistribution[3].Count)
	assert.Zero(t, view.CountDistribution[4].Count)
	assert.Zero(t, view.CountDistribution[5].Count)
}

func TestServiceUsageQuintileOrder(t *testing.T) {
	merged := summaryFixture(t)
	view, err := analysis.ServiceUsage(analysis.ApplyFilters(merged, allProvinces(merged.Rows), models.UrbanRuralAll))
	require.NoError(t, err)

	require.Len(t, view.ByQuintile, 5)
	for i, q := range view.ByQuintile {
		assert.Equal(t, models.Quintiles[i], q.Quintile)
		assert.Equal(t, 20, q.Count)
	}
}

func TestSegmentationDisjointAndExhaustive(t *testing.T) {
	merged := summaryFixture(t)
	v := analysis.ApplyFilters(merged, allProvinces(merged.Rows), models.UrbanRuralAll)

	view, err := analysis.Segmentation(v)
	require.NoError(t, err)

	require.Len(t, view.Sizes, 4, "every segment reports a size, even zero")
	total := 0
	bySegment := make(map[string]int)
	for _, s := range view.Sizes {
		total += s.Size
		bySegment[s.Segment] = s.Size
	}
	assert.Equal(t, v.Len(), total, "segment sizes must sum to the filtered population")

	assert.Equal(t, 60, bySegment[models.SegmentDigitalChampions])
	assert.Equal(t, 20, bySegment[models.SegmentMobileOnly])
	assert.Equal(t, 0, bySegment[models.SegmentTraditionalBanking])
	assert.Equal(t, 20, bySegment[models.SegmentFinanciallyExcluded])

	// the empty segment is omitted from the characteristics table
	require.Len(t, view.Summaries, 3)
	for _, s := range view.Summaries {
		assert.NotEqual(t, models.SegmentTraditionalBanking, s.Segment)
		assert.Positive(t, s.Size)
	}
}

func TestPolicyInsightsTargetsComputedFromFilteredView(t *testing.T) {
	merged := summaryFixture(t)
	v := analysis.ApplyFilters(merged, allProvinces(merged.Rows), models.UrbanRuralAll)

	view, err := analysis.PolicyInsights(v)
	require.NoError(t, err)

	// the fixture alternates Rural (even index) / Urban (odd index);
	// the 15 excluded respondents are indexes 85..99, 7 of them rural
	assert.Equal(t, 7, view.RuralExcludedCount)
	assert.InDelta(t, 0.20, view.MobileVsBankingGap, 1e-9)

	require.Len(t, view.Recommendations, 3)
	assert.Equal(t, 7, view.Recommendations[0].TargetPopulation)
	// literacy < 5: the 5 savings-only rows (score 4) and 15 excluded (score 2)
	assert.Equal(t, 20, view.Recommendations[1].TargetPopulation)
	// non mobile money users: 100 - 80
	assert.Equal(t, 20, view.Recommendations[2].TargetPopulation)
	assert.Equal(t, "HIGH", view.Recommendations[0].Priority)
	assert.Equal(t, "MEDIUM", view.Recommendations[2].Priority)

	urbanGap := view.UrbanInclusionRate - view.RuralInclusionRate
	assert.InDelta(t, view.UrbanRuralGap, urbanGap, 1e-9)
}
