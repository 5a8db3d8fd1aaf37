package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidMonths are the canonical English month names accepted everywhere a
// month is submitted.
var ValidMonths = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthSet = func() map[string]bool {
	m := make(map[string]bool, len(ValidMonths))
	for _, name := range ValidMonths {
		m[name] = true
	}
	return m
}()

// MinReportYear is the earliest year a report may cover.
const MinReportYear = 2020

// ReportRecord is a fully validated report submission, ready to persist.
type ReportRecord struct {
	NgoID           string
	Month           string
	Year            int
	PeopleHelped    int
	EventsConducted int
	FundsUtilized   float64
}

// normalizeHeader collapses case, spaces and underscores so "NGO ID",
// "ngoId" and "NGO_ID" all resolve to the same column.
func normalizeHeader(header string) string {
	s := strings.TrimSpace(strings.ToLower(header))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// Normalized column keys.
const (
	colNgoID           = "ngoid"
	colMonth           = "month"
	colYear            = "year"
	colPeopleHelped    = "peoplehelped"
	colEventsConducted = "eventsconducted"
	colFundsUtilized   = "fundsutilized"
)

// ValidateRow checks one raw row, keyed by normalized header. All rule
// violations are collected so the submitter gets a complete diagnostic per
// row. On success the returned record carries trimmed and parsed values and
// the error list is empty; the two outcomes never mix.
func ValidateRow(row map[string]string) (ReportRecord, []string) {
	var errs []string
	var rec ReportRecord

	ngoID := strings.TrimSpace(row[colNgoID])
	if ngoID == "" {
		errs = append(errs, "NGO ID is required")
	}

	month := strings.TrimSpace(row[colMonth])
	if month == "" {
		errs = append(errs, "Month is required")
	} else if !monthSet[month] {
		errs = append(errs, fmt.Sprintf("Invalid month: %q. Must be one of: %s", month, strings.Join(ValidMonths, ", ")))
	}

	currentYear := time.Now().Year()
	yearStr := strings.TrimSpace(row[colYear])
	year, yearErr := strconv.Atoi(yearStr)
	if yearStr == "" {
		errs = append(errs, "Year is required")
	} else if yearErr != nil {
		errs = append(errs, fmt.Sprintf("Invalid year: %q. Must be a valid number", yearStr))
	} else if year < MinReportYear || year > currentYear {
		errs = append(errs, fmt.Sprintf("Invalid year: %d. Must be between %d and %d", year, MinReportYear, currentYear))
	}

	peopleStr := strings.TrimSpace(row[colPeopleHelped])
	people, peopleErr := strconv.Atoi(peopleStr)
	if peopleStr == "" {
		errs = append(errs, "People Helped is required")
	} else if peopleErr != nil {
		errs = append(errs, fmt.Sprintf("Invalid People Helped: %q. Must be a valid number", peopleStr))
	} else if people <= 0 {
		errs = append(errs, fmt.Sprintf("People Helped must be greater than 0, got: %d", people))
	}

	eventsStr := strings.TrimSpace(row[colEventsConducted])
	events, eventsErr := strconv.Atoi(eventsStr)
	if eventsStr == "" {
		errs = append(errs, "Events Conducted is required")
	} else if eventsErr != nil {
		errs = append(errs, fmt.Sprintf("Invalid Events Conducted: %q. Must be a valid number", eventsStr))
	} else if events <= 0 {
		errs = append(errs, fmt.Sprintf("Events Conducted must be greater than 0, got: %d", events))
	}

	fundsStr := strings.TrimSpace(row[colFundsUtilized])
	funds, fundsErr := strconv.ParseFloat(fundsStr, 64)
	if fundsStr == "" {
		errs = append(errs, "Funds Utilized is required")
	} else if fundsErr != nil {
		errs = append(errs, fmt.Sprintf("Invalid Funds Utilized: %q. Must be a valid number", fundsStr))
	} else if funds <= 0 {
		errs = append(errs, fmt.Sprintf("Funds Utilized must be greater than 0, got: %v", funds))
	}

	if len(errs) > 0 {
		return ReportRecord{}, errs
	}

	rec = ReportRecord{
		NgoID:           ngoID,
		Month:           month,
		Year:            year,
		PeopleHelped:    people,
		EventsConducted: events,
		FundsUtilized:   funds,
	}
	return rec, nil
}

// ValidateRecord applies the same rule set to an already-typed record. The
// single-submission endpoint shares this with the CSV path so the two can
// never disagree about what a valid report is.
func ValidateRecord(rec ReportRecord) []string {
	var errs []string

	if strings.TrimSpace(rec.NgoID) == "" {
		errs = append(errs, "NGO ID is required")
	}

	month := strings.TrimSpace(rec.Month)
	if month == "" {
		errs = append(errs, "Month is required")
	} else if !monthSet[month] {
		errs = append(errs, fmt.Sprintf("Invalid month: %q. Must be one of: %s", month, strings.Join(ValidMonths, ", ")))
	}

	currentYear := time.Now().Year()
	if rec.Year < MinReportYear || rec.Year > currentYear {
		errs = append(errs, fmt.Sprintf("Invalid year: %d. Must be between %d and %d", rec.Year, MinReportYear, currentYear))
	}

	if rec.PeopleHelped <= 0 {
		errs = append(errs, fmt.Sprintf("People Helped must be greater than 0, got: %d", rec.PeopleHelped))
	}
	if rec.EventsConducted <= 0 {
		errs = append(errs, fmt.Sprintf("Events Conducted must be greater than 0, got: %d", rec.EventsConducted))
	}
	if rec.FundsUtilized <= 0 {
		errs = append(errs, fmt.Sprintf("Funds Utilized must be greater than 0, got: %v", rec.FundsUtilized))
	}

	return errs
}
