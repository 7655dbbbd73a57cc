package analysis

import (
	"sort"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

// The six aggregation views. Each is a pure reduction over a
// FilteredView and fails with EmptyInputError on zero rows: means and
// rates are undefined on empty input, and returning silent zeros would
// render a dashboard full of fake numbers.

// ExecutiveSummary computes the headline indicators: overall inclusion,
// per-service adoption, the mobile-vs-banking gap and the urban/rural
// comparison.
func ExecutiveSummary(v *FilteredView) (*models.ExecutiveSummary, error) {
	n := v.Len()
	if n == 0 {
		return nil, &models.EmptyInputError{View: "executive summary"}
	}

	var included, bank, mobile, savings, loan, insurance int
	var literacy float64

	type urbanAcc struct {
		count, bank, mobile, included int
	}
	urbanGroups := make(map[string]*urbanAcc)
	var urbanOrder []string

	v.Each(func(r *models.MergedRecord) {
		if r.AnyFormalService {
			included++
		}
		if r.HasBankAccount {
			bank++
		}
		if r.UsesMobileMoney {
			mobile++
		}
		if r.HasSavings {
			savings++
		}
		if r.HasLoan {
			loan++
		}
		if r.UsesInsurance {
			insurance++
		}
		literacy += r.FinancialLiteracyScore

		g, ok := urbanGroups[r.UrbanRural]
		if !ok {
			g = &urbanAcc{}
			urbanGroups[r.UrbanRural] = g
			urbanOrder = append(urbanOrder, r.UrbanRural)
		}
		g.count++
		if r.HasBankAccount {
			g.bank++
		}
		if r.UsesMobileMoney {
			g.mobile++
		}
		if r.AnyFormalService {
			g.included++
		}
	})

	sort.Strings(urbanOrder)
	urbanRural := make([]models.UrbanRuralStats, 0, len(urbanOrder))
	for _, category := range urbanOrder {
		g := urbanGroups[category]
		urbanRural = append(urbanRural, models.UrbanRuralStats{
			Category:        category,
			BankingRate:     ratio(g.bank, g.count),
			MobileMoneyRate: ratio(g.mobile, g.count),
			InclusionRate:   ratio(g.included, g.count),
			Count:           g.count,
		})
	}

	return &models.ExecutiveSummary{
		InclusionRate:      ratio(included, n),
		MobileMoneyRate:    ratio(mobile, n),
		BankingRate:        ratio(bank, n),
		MobileVsBankingGap: ratio(mobile, n) - ratio(bank, n),
		AvgLiteracyScore:   literacy / float64(n),
		ExcludedCount:      n - included,
		ExcludedShare:      ratio(n-included, n),
		ServiceAdoption: []models.ServiceRate{
			{Service: "Bank Account", Rate: ratio(bank, n)},
			{Service: "Mobile Money", Rate: ratio(mobile, n)},
			{Service: "Savings", Rate: ratio(savings, n)},
			{Service: "Loans", Rate: ratio(loan, n)},
			{Service: "Insurance", Rate: ratio(insurance, n)},
		},
		UrbanRural: urbanRural,
	}, nil
}

// Demographics groups inclusion, literacy and income by education
// level, and service adoption by the fixed age buckets. Age groups are
// emitted in bucket order, never label sort order.
func Demographics(v *FilteredView) (*models.DemographicView, error) {
	if v.Len() == 0 {
		return nil, &models.EmptyInputError{View: "demographic"}
	}

	type eduAcc struct {
		count, included int
		literacy        float64
		income          float64
	}
	eduGroups := make(map[string]*eduAcc)

	type ageAcc struct {
		count, mobile, bank int
	}
	ageGroups := make(map[string]*ageAcc, len(models.AgeGroups))

	v.Each(func(r *models.MergedRecord) {
		e, ok := eduGroups[r.Education]
		if !ok {
			e = &eduAcc{}
			eduGroups[r.Education] = e
		}
		e.count++
		if r.AnyFormalService {
			e.included++
		}
		e.literacy += r.FinancialLiteracyScore
		e.income += r.MonthlyIncomeRWF

		a, ok := ageGroups[r.AgeGroup]
		if !ok {
			a = &ageAcc{}
			ageGroups[r.AgeGroup] = a
		}
		a.count++
		if r.UsesMobileMoney {
			a.mobile++
		}
		if r.HasBankAccount {
			a.bank++
		}
	})

	educations := make([]string, 0, len(eduGroups))
	for education := range eduGroups {
		educations = append(educations, education)
	}
	sort.Strings(educations)

	byEducation := make([]models.EducationStats, 0, len(educations))
	for _, education := range educations {
		e := eduGroups[education]
		byEducation = append(byEducation, models.EducationStats{
			Education:        education,
			InclusionRate:    ratio(e.included, e.count),
			AvgLiteracyScore: e.literacy / float64(e.count),
			AvgIncomeRWF:     e.income / float64(e.count),
			Count:            e.count,
		})
	}

	byAgeGroup := make([]models.AgeGroupStats, 0, len(models.AgeGroups))
	for _, group := range models.AgeGroups {
		a, ok := ageGroups[group]
		if !ok {
			continue
		}
		byAgeGroup = append(byAgeGroup, models.AgeGroupStats{
			AgeGroup:        group,
			MobileMoneyRate: ratio(a.mobile, a.count),
			BankingRate:     ratio(a.bank, a.count),
			Count:           a.count,
		})
	}

	return &models.DemographicView{ByEducation: byEducation, ByAgeGroup: byAgeGroup}, nil
}

// Provincial groups the headline indicators by province, sorted
// ascending by inclusion rate. The sort is stable; tied provinces keep
// the order in which they first appear in the filtered data.
func Provincial(v *FilteredView) (*models.ProvincialView, error) {
	if v.Len() == 0 {
		return nil, &models.EmptyInputError{View: "provincial"}
	}

	type provAcc struct {
		count, included, mobile, bank int
		income, literacy              float64
	}
	groups := make(map[string]*provAcc)
	var order []string

	v.Each(func(r *models.MergedRecord) {
		g, ok := groups[r.Province]
		if !ok {
			g = &provAcc{}
			groups[r.Province] = g
			order = append(order, r.Province)
		}
		g.count++
		if r.AnyFormalService {
			g.included++
		}
		if r.UsesMobileMoney {
			g.mobile++
		}
		if r.HasBankAccount {
			g.bank++
		}
		g.income += r.MonthlyIncomeRWF
		g.literacy += r.FinancialLiteracyScore
	})

	provinces := make([]models.ProvinceStats, 0, len(order))
	for _, province := range order {
		g := groups[province]
		provinces = append(provinces, models.ProvinceStats{
			Province:         province,
			InclusionRate:    ratio(g.included, g.count),
			MobileMoneyRate:  ratio(g.mobile, g.count),
			BankingRate:      ratio(g.bank, g.count),
			AvgIncomeRWF:     g.income / float64(g.count),
			AvgLiteracyScore: g.literacy / float64(g.count),
			Count:            g.count,
		})
	}
	sort.SliceStable(provinces, func(a, b int) bool {
		return provinces[a].InclusionRate < provinces[b].InclusionRate
	})

	return &models.ProvincialView{Provinces: provinces}, nil
}

// ServiceUsage builds the 0-5 service-count histogram (all six buckets,
// empty or not) and per-quintile adoption rates in Q1..Q5 order.
func ServiceUsage(v *FilteredView) (*models.ServiceUsageView, error) {
	if v.Len() == 0 {
		return nil, &models.EmptyInputError{View: "service usage"}
	}

	var histogram [6]int

	type quintileAcc struct {
		count, bank, mobile, savings int
		services                     int
	}
	quintiles := make(map[string]*quintileAcc, len(models.Quintiles))

	v.Each(func(r *models.MergedRecord) {
		histogram[r.ServiceCount]++

		q, ok := quintiles[r.IncomeQuintile]
		if !ok {
			q = &quintileAcc{}
			quintiles[r.IncomeQuintile] = q
		}
		q.count++
		if r.HasBankAccount {
			q.bank++
		}
		if r.UsesMobileMoney {
			q.mobile++
		}
		if r.HasSavings {
			q.savings++
		}
		q.services += r.ServiceCount
	})

	distribution := make([]models.ServiceCountBucket, 6)
	for i := range distribution {
		distribution[i] = models.ServiceCountBucket{Services: i, Count: histogram[i]}
	}

	byQuintile := make([]models.QuintileStats, 0, len(models.Quintiles))
	for _, label := range models.Quintiles {
		q, ok := quintiles[label]
		if !ok {
			continue
		}
		byQuintile = append(byQuintile, models.QuintileStats{
			Quintile:        label,
			BankingRate:     ratio(q.bank, q.count),
			MobileMoneyRate: ratio(q.mobile, q.count),
			SavingsRate:     ratio(q.savings, q.count),
			AvgServiceCount: float64(q.services) / float64(q.count),
			Count:           q.count,
		})
	}

	return &models.ServiceUsageView{CountDistribution: distribution, ByQuintile: byQuintile}, nil
}

// Segmentation partitions respondents into the four banking×mobile
// segments. Sizes always reports all four segments, zero or not;
// Summaries only describes the non-empty ones.
func Segmentation(v *FilteredView) (*models.SegmentationView, error) {
	n := v.Len()
	if n == 0 {
		return nil, &models.EmptyInputError{View: "market segmentation"}
	}

	type segAcc struct {
		count, urban     int
		income, literacy float64
	}
	segments := make(map[string]*segAcc, len(models.Segments))
	for _, name := range models.Segments {
		segments[name] = &segAcc{}
	}

	v.Each(func(r *models.MergedRecord) {
		s := segments[models.SegmentFor(r.HasBankAccount, r.UsesMobileMoney)]
		s.count++
		if r.UrbanRural == models.Urban {
			s.urban++
		}
		s.income += r.MonthlyIncomeRWF
		s.literacy += r.FinancialLiteracyScore
	})

	sizes := make([]models.SegmentSize, 0, len(models.Segments))
	summaries := make([]models.SegmentSummary, 0, len(models.Segments))
	for _, name := range models.Segments {
		s := segments[name]
		sizes = append(sizes, models.SegmentSize{Segment: name, Size: s.count})
		if s.count == 0 {
			continue
		}
		summaries = append(summaries, models.SegmentSummary{
			Segment:          name,
			Size:             s.count,
			Share:            ratio(s.count, n),
			AvgIncomeRWF:     s.income / float64(s.count),
			UrbanShare:       ratio(s.urban, s.count),
			AvgLiteracyScore: s.literacy / float64(s.count),
		})
	}

	return &models.SegmentationView{Sizes: sizes, Summaries: summaries}, nil
}

// PolicyInsights computes the urban-rural inclusion gap and the three
// recommendation records. Target populations are counted from the
// filtered view, never hardcoded.
func PolicyInsights(v *FilteredView) (*models.PolicyInsightsView, error) {
	n := v.Len()
	if n == 0 {
		return nil, &models.EmptyInputError{View: "policy insights"}
	}

	var urban, urbanIncluded, rural, ruralIncluded int
	var ruralExcluded, lowLiteracy, noMobile, mobile, bank int

	v.Each(func(r *models.MergedRecord) {
		switch r.UrbanRural {
		case models.Urban:
			urban++
			if r.AnyFormalService {
				urbanIncluded++
			}
		case models.Rural:
			rural++
			if r.AnyFormalService {
				ruralIncluded++
			} else {
				ruralExcluded++
			}
		}
		if r.FinancialLiteracyScore < 5 {
			lowLiteracy++
		}
		if r.UsesMobileMoney {
			mobile++
		} else {
			noMobile++
		}
		if r.HasBankAccount {
			bank++
		}
	})

	urbanRate := ratio(urbanIncluded, urban)
	ruralRate := ratio(ruralIncluded, rural)
	gap := ratio(mobile, n) - ratio(bank, n)

	return &models.PolicyInsightsView{
		UrbanInclusionRate: urbanRate,
		RuralInclusionRate: ruralRate,
		UrbanRuralGap:      urbanRate - ruralRate,
		RuralExcludedCount: ruralExcluded,
		MobileVsBankingGap: gap,
		Recommendations: []models.Recommendation{
			{
				Title:            "Rural Mobile Money Agent Expansion",
				Priority:         "HIGH",
				Description:      "Expand mobile money agent networks in rural areas to bridge the urban-rural inclusion gap.",
				TargetPopulation: ruralExcluded,
				TargetLabel:      "rural residents",
				Impact:           "Could increase national inclusion by 8-12%",
			},
			{
				Title:            "Financial Literacy Programs",
				Priority:         "HIGH",
				Description:      "Implement targeted financial education for low-education demographics.",
				TargetPopulation: lowLiteracy,
				TargetLabel:      "individuals with low financial literacy",
				Impact:           "Could improve literacy scores by 2-3 points",
			},
			{
				Title:            "Digital-First Service Strategy",
				Priority:         "MEDIUM",
				Description:      "Prioritize mobile-based financial services over traditional banking infrastructure.",
				TargetPopulation: noMobile,
				TargetLabel:      "non-mobile money users",
				Impact:           "More cost-effective reach than traditional banking",
			},
		},
	}, nil
}

// ratio is a guarded division so empty subgroups report 0 instead of NaN.
func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
