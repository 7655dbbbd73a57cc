package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/models"
)

// CSVSource loads the two tables from delimited files with header rows.
// This is the default source; the survey exports ship as CSV.
type CSVSource struct {
	DemographicsPath string
	ServicesPath     string
}

func NewCSVSource(demographicsPath, servicesPath string) *CSVSource {
	return &CSVSource{DemographicsPath: demographicsPath, ServicesPath: servicesPath}
}

func (s *CSVSource) Load(ctx context.Context) (*Tables, error) {
	t := &Tables{}

	err := readCSV(s.DemographicsPath, "demographics", DemographicsColumns, func(cols map[string]int, record []string, line int) error {
		r, err := parseRespondent(cols, record)
		if err != nil {
			return &models.DataLoadError{
				Source: "demographics",
				Reason: fmt.Sprintf("line %d: %v", line, err),
			}
		}
		t.Demographics = append(t.Demographics, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = readCSV(s.ServicesPath, "financial_services", ServicesColumns, func(cols map[string]int, record []string, line int) error {
		u, err := parseServiceUsage(cols, record)
		if err != nil {
			return &models.DataLoadError{
				Source: "financial_services",
				Reason: fmt.Sprintf("line %d: %v", line, err),
			}
		}
		t.Services = append(t.Services, u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return finishLoad(t)
}

// readCSV opens a delimited file, checks that every required column is
// present in the header and hands each record to row.
func readCSV(path, source string, required []string, row func(cols map[string]int, record []string, line int) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &models.DataLoadError{Source: source, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return &models.DataLoadError{Source: source, Reason: "cannot read header row", Err: err}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return &models.DataLoadError{
				Source: source,
				Reason: fmt.Sprintf("missing required column %q", name),
			}
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return &models.DataLoadError{Source: source, Reason: fmt.Sprintf("line %d is malformed", line), Err: err}
		}
		if err := row(cols, record, line); err != nil {
			return err
		}
	}
}

func parseRespondent(cols map[string]int, record []string) (models.Respondent, error) {
	var r models.Respondent
	r.RespondentID = record[cols["respondent_id"]]
	r.Province = record[cols["province"]]
	r.UrbanRural = record[cols["urban_rural"]]
	r.Education = record[cols["education"]]

	age, err := strconv.Atoi(strings.TrimSpace(record[cols["age"]]))
	if err != nil {
		return r, fmt.Errorf("bad age %q", record[cols["age"]])
	}
	r.Age = age

	income, err := strconv.ParseFloat(strings.TrimSpace(record[cols["monthly_income_rwf"]]), 64)
	if err != nil {
		return r, fmt.Errorf("bad monthly_income_rwf %q", record[cols["monthly_income_rwf"]])
	}
	r.MonthlyIncomeRWF = income
	return r, nil
}

func parseServiceUsage(cols map[string]int, record []string) (models.ServiceUsage, error) {
	var u models.ServiceUsage
	u.RespondentID = record[cols["respondent_id"]]

	flags := []struct {
		column string
		dest   *bool
	}{
		{"has_bank_account", &u.HasBankAccount},
		{"uses_mobile_money", &u.UsesMobileMoney},
		{"has_savings", &u.HasSavings},
		{"has_loan", &u.HasLoan},
		{"uses_insurance", &u.UsesInsurance},
	}
	for _, f := range flags {
		v, err := parseFlag(record[cols[f.column]])
		if err != nil {
			return u, fmt.Errorf("bad %s %q", f.column, record[cols[f.column]])
		}
		*f.dest = v
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(record[cols["financial_literacy_score"]]), 64)
	if err != nil {
		return u, fmt.Errorf("bad financial_literacy_score %q", record[cols["financial_literacy_score"]])
	}
	u.FinancialLiteracyScore = score
	return u, nil
}

// parseFlag accepts the survey's 0/1 encoding as well as true/false.
func parseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean flag")
}
