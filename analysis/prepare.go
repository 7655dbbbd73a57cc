package analysis

import (
	"sort"

	"github.com/op/go-logging"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/config"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/dataset"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

var log = logging.MustGetLogger("log")

// JoinDiagnostics counts the rows the inner join discarded. The counts
// are informational; preparation never fails because of unmatched rows.
type JoinDiagnostics struct {
	DroppedDemographics int `json:"dropped_demographics"`
	DroppedServices     int `json:"dropped_services"`
	DuplicateIDs        int `json:"duplicate_ids"`
}

// Err returns the diagnostics as an observable error, or nil when the
// join dropped nothing.
func (d JoinDiagnostics) Err() error {
	if d.DroppedDemographics == 0 && d.DroppedServices == 0 && d.DuplicateIDs == 0 {
		return nil
	}
	return &models.UnmatchedJoinError{
		DroppedDemographics: d.DroppedDemographics,
		DroppedServices:     d.DroppedServices,
		DuplicateIDs:        d.DuplicateIDs,
	}
}

// MergedTable is the prepared, immutable dataset every view reads.
// Rows and derived fields are never mutated after Prepare returns;
// concurrent readers share it without locking.
type MergedTable struct {
	Rows        []models.MergedRecord
	Diagnostics JoinDiagnostics

	// QuintileBounds holds the highest income in each of Q1..Q5,
	// recomputed whenever the base dataset is prepared.
	QuintileBounds []float64
}

// Prepare inner-joins the two source tables on respondent_id and
// computes the derived fields. The result is cached keyed by the
// source-table fingerprints, so preparing the same loaded data twice
// returns the identical table.
func Prepare(t *dataset.Tables) (*MergedTable, error) {
	cacheKey := config.GetCacheKey("prepared", t.DemographicsFingerprint, t.ServicesFingerprint)
	if config.DatasetCache != nil {
		if cached, ok := config.DatasetCache.Get(cacheKey); ok {
			return cached.(*MergedTable), nil
		}
	}

	merged, err := prepare(t)
	if err != nil {
		return nil, err
	}
	if config.DatasetCache != nil {
		config.DatasetCache.SetDefault(cacheKey, merged)
	}
	return merged, nil
}

func prepare(t *dataset.Tables) (*MergedTable, error) {
	var diag JoinDiagnostics

	// Duplicate respondent ids within a source keep the first row.
	services := make(map[string]models.ServiceUsage, len(t.Services))
	for _, s := range t.Services {
		if _, ok := services[s.RespondentID]; ok {
			diag.DuplicateIDs++
			continue
		}
		services[s.RespondentID] = s
	}

	seen := make(map[string]struct{}, len(t.Demographics))
	rows := make([]models.MergedRecord, 0, len(t.Demographics))
	matched := make(map[string]struct{}, len(services))

	for _, r := range t.Demographics {
		if _, ok := seen[r.RespondentID]; ok {
			diag.DuplicateIDs++
			continue
		}
		seen[r.RespondentID] = struct{}{}

		s, ok := services[r.RespondentID]
		if !ok {
			diag.DroppedDemographics++
			continue
		}
		matched[r.RespondentID] = struct{}{}

		serviceCount := 0
		for _, flag := range []bool{s.HasBankAccount, s.UsesMobileMoney, s.HasSavings, s.HasLoan, s.UsesInsurance} {
			if flag {
				serviceCount++
			}
		}

		rows = append(rows, models.MergedRecord{
			RespondentID:           r.RespondentID,
			Province:               r.Province,
			UrbanRural:             r.UrbanRural,
			Age:                    r.Age,
			Education:              r.Education,
			MonthlyIncomeRWF:       r.MonthlyIncomeRWF,
			HasBankAccount:         s.HasBankAccount,
			UsesMobileMoney:        s.UsesMobileMoney,
			HasSavings:             s.HasSavings,
			HasLoan:                s.HasLoan,
			UsesInsurance:          s.UsesInsurance,
			FinancialLiteracyScore: s.FinancialLiteracyScore,
			AnyFormalService:       s.HasBankAccount || s.UsesMobileMoney || s.HasSavings,
			AgeGroup:               models.AgeGroupFor(r.Age),
			ServiceCount:           serviceCount,
		})
	}
	diag.DroppedServices = len(services) - len(matched)

	bounds, err := assignQuintiles(rows)
	if err != nil {
		return nil, err
	}

	if err := diag.Err(); err != nil {
		log.Warningf("Prepared dataset with diagnostics: %v", err)
	}

	return &MergedTable{Rows: rows, Diagnostics: diag, QuintileBounds: bounds}, nil
}

// assignQuintiles labels every row Q1..Q5 by income rank over the full
// prepared dataset. Buckets hold ceil(N/5) or floor(N/5) rows; ties are
// broken by stable row order. Returns the highest income per bucket.
func assignQuintiles(rows []models.MergedRecord) ([]float64, error) {
	distinct := make(map[float64]struct{}, len(rows))
	for _, r := range rows {
		distinct[r.MonthlyIncomeRWF] = struct{}{}
	}
	if len(distinct) < 5 {
		return nil, &models.InsufficientDataError{DistinctIncomes: len(distinct)}
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rows[order[a]].MonthlyIncomeRWF < rows[order[b]].MonthlyIncomeRWF
	})

	n := len(rows)
	bounds := make([]float64, 5)
	for rank, idx := range order {
		bucket := rank * 5 / n
		rows[idx].IncomeQuintile = models.Quintiles[bucket]
		// ascending rank order, so the last write per bucket is its max
		bounds[bucket] = rows[idx].MonthlyIncomeRWF
	}
	return bounds, nil
}
