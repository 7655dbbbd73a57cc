package models

// View output structures. Each aggregation view returns one of these;
// the rendering frontend decides how to chart them.

type ServiceRate struct {
	Service string  `json:"service"`
	Rate    float64 `json:"rate"`
}

type UrbanRuralStats struct {
	Category        string  `json:"category"`
	BankingRate     float64 `json:"banking_rate"`
	MobileMoneyRate float64 `json:"mobile_money_rate"`
	InclusionRate   float64 `json:"inclusion_rate"`
	Count           int     `json:"count"`
}

type ExecutiveSummary struct {
	InclusionRate      float64           `json:"inclusion_rate"`
	MobileMoneyRate    float64           `json:"mobile_money_rate"`
	BankingRate        float64           `json:"banking_rate"`
	MobileVsBankingGap float64           `json:"mobile_vs_banking_gap"`
	AvgLiteracyScore   float64           `json:"avg_literacy_score"`
	ExcludedCount      int               `json:"excluded_count"`
	ExcludedShare      float64           `json:"excluded_share"`
	ServiceAdoption    []ServiceRate     `json:"service_adoption"`
	UrbanRural         []UrbanRuralStats `json:"urban_rural"`
}

type EducationStats struct {
	Education        string  `json:"education"`
	InclusionRate    float64 `json:"inclusion_rate"`
	AvgLiteracyScore float64 `json:"avg_literacy_score"`
	AvgIncomeRWF     float64 `json:"avg_income_rwf"`
	Count            int     `json:"count"`
}

type AgeGroupStats struct {
	AgeGroup        string  `json:"age_group"`
	MobileMoneyRate float64 `json:"mobile_money_rate"`
	BankingRate     float64 `json:"banking_rate"`
	Count           int     `json:"count"`
}

type DemographicView struct {
	ByEducation []EducationStats `json:"by_education"`
	ByAgeGroup  []AgeGroupStats  `json:"by_age_group"`
}

type ProvinceStats struct {
	Province         string  `json:"province"`
	InclusionRate    float64 `json:"inclusion_rate"`
	MobileMoneyRate  float64 `json:"mobile_money_rate"`
	BankingRate      float64 `json:"banking_rate"`
	AvgIncomeRWF     float64 `json:"avg_income_rwf"`
	AvgLiteracyScore float64 `json:"avg_literacy_score"`
	Count            int     `json:"count"`
}

// ProvincialView is sorted ascending by inclusion rate; ties keep the
// order in which provinces first appear in the filtered data.
type ProvincialView struct {
	Provinces []ProvinceStats `json:"provinces"`
}

type ServiceCountBucket struct {
	Services int `json:"services"`
	Count    int `json:"count"`
}

type QuintileStats struct {
	Quintile        string  `json:"quintile"`
	BankingRate     float64 `json:"banking_rate"`
	MobileMoneyRate float64 `json:"mobile_money_rate"`
	SavingsRate     float64 `json:"savings_rate"`
	AvgServiceCount float64 `json:"avg_service_count"`
	Count           int     `json:"count"`
}

// ServiceUsageView always carries all six service-count buckets (0-5)
// and quintile rows in Q1..Q5 order.
type ServiceUsageView struct {
	CountDistribution []ServiceCountBucket `json:"count_distribution"`
	ByQuintile        []QuintileStats      `json:"by_quintile"`
}

type SegmentSize struct {
	Segment string `json:"segment"`
	Size    int    `json:"size"`
}

type SegmentSummary struct {
	Segment          string  `json:"segment"`
	Size             int     `json:"size"`
	Share            float64 `json:"share"`
	AvgIncomeRWF     float64 `json:"avg_income_rwf"`
	UrbanShare       float64 `json:"urban_share"`
	AvgLiteracyScore float64 `json:"avg_literacy_score"`
}

// SegmentationView reports every segment's size, including zeros, in
// Sizes; Summaries only carries rows for non-empty segments.
type SegmentationView struct {
	Sizes     []SegmentSize    `json:"sizes"`
	Summaries []SegmentSummary `json:"summaries"`
}

type Recommendation struct {
	Title            string `json:"title"`
	Priority         string `json:"priority"`
	Description      string `json:"description"`
	TargetPopulation int    `json:"target_population"`
	TargetLabel      string `json:"target_label"`
	Impact           string `json:"impact"`
}

type PolicyInsightsView struct {
	UrbanInclusionRate float64          `json:"urban_inclusion_rate"`
	RuralInclusionRate float64          `json:"rural_inclusion_rate"`
	UrbanRuralGap      float64          `json:"urban_rural_gap"`
	RuralExcludedCount int              `json:"rural_excluded_count"`
	MobileVsBankingGap float64          `json:"mobile_vs_banking_gap"`
	Recommendations    []Recommendation `json:"recommendations"`
}
