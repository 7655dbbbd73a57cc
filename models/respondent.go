package models

// Respondent is one row of the demographics survey table.
type Respondent struct {
	RespondentID     string  `json:"respondent_id" bson:"respondent_id"`
	Province         string  `json:"province" bson:"province"`
	UrbanRural       string  `json:"urban_rural" bson:"urban_rural"`
	Age              int     `json:"age" bson:"age"`
	Education        string  `json:"education" bson:"education"`
	MonthlyIncomeRWF float64 `json:"monthly_income_rwf" bson:"monthly_income_rwf"`
}

// ServiceUsage is one row of the financial services table.
type ServiceUsage struct {
	RespondentID           string  `json:"respondent_id" bson:"respondent_id"`
	HasBankAccount         bool    `json:"has_bank_account" bson:"has_bank_account"`
	UsesMobileMoney        bool    `json:"uses_mobile_money" bson:"uses_mobile_money"`
	HasSavings             bool    `json:"has_savings" bson:"has_savings"`
	HasLoan                bool    `json:"has_loan" bson:"has_loan"`
	UsesInsurance          bool    `json:"uses_insurance" bson:"uses_insurance"`
	FinancialLiteracyScore float64 `json:"financial_literacy_score" bson:"financial_literacy_score"`
}

// MergedRecord is the inner join of a Respondent with its ServiceUsage
// row plus the derived fields. Derived fields are computed once during
// preparation and never mutated afterwards.
type MergedRecord struct {
	RespondentID           string  `json:"respondent_id"`
	Province               string  `json:"province"`
	UrbanRural             string  `json:"urban_rural"`
	Age                    int     `json:"age"`
	Education              string  `json:"education"`
	MonthlyIncomeRWF       float64 `json:"monthly_income_rwf"`
	HasBankAccount         bool    `json:"has_bank_account"`
	UsesMobileMoney        bool    `json:"uses_mobile_money"`
	HasSavings             bool    `json:"has_savings"`
	HasLoan                bool    `json:"has_loan"`
	UsesInsurance          bool    `json:"uses_insurance"`
	FinancialLiteracyScore float64 `json:"financial_literacy_score"`

	AnyFormalService bool   `json:"any_formal_service"`
	IncomeQuintile   string `json:"income_quintile"`
	AgeGroup         string `json:"age_group"`
	ServiceCount     int    `json:"service_count"`
}

// UrbanRuralFilter selects which residence categories a view includes.
type UrbanRuralFilter string

const (
	UrbanRuralAll UrbanRuralFilter = "All"
	UrbanOnly     UrbanRuralFilter = "Urban"
	RuralOnly     UrbanRuralFilter = "Rural"
)

// Urban and Rural are the two values the urban_rural column may hold.
const (
	Urban = "Urban"
	Rural = "Rural"
)

// AgeGroups lists the fixed age buckets in presentation order. Views
// grouped by age must follow this order, not the label sort order.
var AgeGroups = []string{"18-25", "26-35", "36-45", "46-55", "56+"}

// AgeGroupFor buckets an age with fixed boundaries at 25, 35, 45 and 55.
func AgeGroupFor(age int) string {
	switch {
	case age <= 25:
		return AgeGroups[0]
	case age <= 35:
		return AgeGroups[1]
	case age <= 45:
		return AgeGroups[2]
	case age <= 55:
		return AgeGroups[3]
	default:
		return AgeGroups[4]
	}
}

// Quintiles lists the income quintile labels from lowest to highest
// income. Views grouped by quintile must follow this order.
var Quintiles = []string{"Q1", "Q2", "Q3", "Q4", "Q5"}

// Market segment labels. The four segments are mutually exclusive and
// jointly exhaustive over (has_bank_account, uses_mobile_money).
const (
	SegmentDigitalChampions    = "Digital Champions"
	SegmentMobileOnly          = "Mobile-Only Users"
	SegmentTraditionalBanking  = "Traditional Banking"
	SegmentFinanciallyExcluded = "Financially Excluded"
)

// Segments lists the market segments in presentation order.
var Segments = []string{
	SegmentDigitalChampions,
	SegmentMobileOnly,
	SegmentTraditionalBanking,
	SegmentFinanciallyExcluded,
}

// SegmentFor assigns a respondent to its market segment.
func SegmentFor(hasBankAccount, usesMobileMoney bool) string {
	switch {
	case hasBankAccount && usesMobileMoney:
		return SegmentDigitalChampions
	case usesMobileMoney:
		return SegmentMobileOnly
	case hasBankAccount:
		return SegmentTraditionalBanking
	default:
		return SegmentFinanciallyExcluded
	}
}
