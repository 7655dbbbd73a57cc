package dataset

import (
	"context"
	"database/sql"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

// PostgresSource loads the two tables from a survey database. Survey
// imports leave NULLs and stringly-typed numerics behind, so every
// column is scanned through COALESCE the same way the import tooling
// writes it.
type PostgresSource struct {
	DB                *sql.DB
	DemographicsTable string
	ServicesTable     string
}

func NewPostgresSource(db *sql.DB, demographicsTable, servicesTable string) *PostgresSource {
	return &PostgresSource{DB: db, DemographicsTable: demographicsTable, ServicesTable: servicesTable}
}

func (s *PostgresSource) Load(ctx context.Context) (*Tables, error) {
	t := &Tables{}

	rows, err := s.DB.QueryContext(ctx, `
        SELECT
            COALESCE(respondent_id, ''),
            COALESCE(province, ''),
            COALESCE(urban_rural, ''),
            COALESCE(NULLIF(trim(age::text), '')::int, 0),
            COALESCE(education, ''),
            COALESCE(NULLIF(trim(monthly_income_rwf::text), '')::float8, 0)
        FROM `+s.DemographicsTable+`
        ORDER BY respondent_id`)
	if err != nil {
		return nil, &models.DataLoadError{Source: "demographics", Reason: "query failed", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var r models.Respondent
		if err := rows.Scan(&r.RespondentID, &r.Province, &r.UrbanRural, &r.Age, &r.Education, &r.MonthlyIncomeRWF); err != nil {
			return nil, &models.DataLoadError{Source: "demographics", Reason: "scan failed", Err: err}
		}
		t.Demographics = append(t.Demographics, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DataLoadError{Source: "demographics", Reason: "row iteration failed", Err: err}
	}

	rows, err = s.DB.QueryContext(ctx, `
        SELECT
            COALESCE(respondent_id, ''),
            COALESCE(has_bank_account, 0) = 1,
            COALESCE(uses_mobile_money, 0) = 1,
            COALESCE(has_savings, 0) = 1,
            COALESCE(has_loan, 0) = 1,
            COALESCE(uses_insurance, 0) = 1,
            COALESCE(NULLIF(trim(financial_literacy_score::text), '')::float8, 0)
        FROM `+s.ServicesTable+`
        ORDER BY respondent_id`)
	if err != nil {
		return nil, &models.DataLoadError{Source: "financial_services", Reason: "query failed", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var u models.ServiceUsage
		if err := rows.Scan(&u.RespondentID, &u.HasBankAccount, &u.UsesMobileMoney,
			&u.HasSavings, &u.HasLoan, &u.UsesInsurance, &u.FinancialLiteracyScore); err != nil {
			return nil, &models.DataLoadError{Source: "financial_services", Reason: "scan failed", Err: err}
		}
		t.Services = append(t.Services, u)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DataLoadError{Source: "financial_services", Reason: "row iteration failed", Err: err}
	}

	return finishLoad(t)
}
