package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/utkarsh/ngo-portal/backend/internal/models"
	"github.com/utkarsh/ngo-portal/backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// RowError records why one row was rejected. RowNumber counts the header as
// row 1, so the first data row is 2.
type RowError struct {
	RowNumber int               `json:"rowNumber"`
	Errors    []string          `json:"errors"`
	Data      map[string]string `json:"data"`
}

// ValidationOutcome summarizes an ingestion run. It is serialized into the
// terminal job record when any row was invalid.
type ValidationOutcome struct {
	TotalRows      int        `json:"totalRows"`
	ValidRows      int        `json:"validRows"`
	InvalidRows    int        `json:"invalidRows"`
	SuccessfulRows int        `json:"successfulRows"`
	Errors         []RowError `json:"errors"`
}

// IngestionService runs the bulk-upload pipeline: decode, validate row by
// row, upsert valid records, and track everything on the job record.
type IngestionService struct {
	reports *ReportService
	jobs    *JobService
}

func NewIngestionService(reports *ReportService, jobs *JobService) *IngestionService {
	return &IngestionService{reports: reports, jobs: jobs}
}

// rowReader yields one data row per call and io.EOF at end of input.
type rowReader interface {
	Headers() []string
	Next() ([]string, error)
}

// Process ingests an uploaded file for the given job. It returns only via
// the job record: a decode or stream failure marks the job failed, a clean
// run marks it completed, and a run with invalid rows marks it
// completed_with_errors carrying the serialized outcome. Rows upserted
// before a failure stay persisted; the pipeline is at-least-once, not
// atomic.
func (s *IngestionService) Process(ctx context.Context, jobID, filename string, data []byte) error {
	reader, err := openRowReader(filename, data)
	if err != nil {
		return s.fail(jobID, 0, 0, err)
	}

	headers := make([]string, len(reader.Headers()))
	for i, h := range reader.Headers() {
		headers[i] = normalizeHeader(h)
	}

	var (
		validRecords []ReportRecord
		rowErrors    []RowError
		totalRows    int
	)

	for {
		cells, readErr := reader.Next()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return s.fail(jobID, totalRows, 0, fmt.Errorf("failed to parse row %d: %w", totalRows+2, readErr))
		}

		totalRows++
		rowNumber := totalRows + 1 // header occupies row 1

		row := make(map[string]string, len(headers))
		raw := make(map[string]string, len(headers))
		for i, h := range reader.Headers() {
			var cell string
			if i < len(cells) {
				cell = strings.TrimSpace(cells[i])
			}
			row[headers[i]] = cell
			raw[strings.TrimSpace(h)] = cell
		}

		rec, errs := ValidateRow(row)
		if len(errs) > 0 {
			rowErrors = append(rowErrors, RowError{RowNumber: rowNumber, Errors: errs, Data: raw})
			continue
		}
		validRecords = append(validRecords, rec)
	}

	// Total row count is known only now; progress percentages start here.
	err = s.jobs.Update(jobID, JobUpdate{
		Status:        models.JobStatusProcessing,
		Progress:      intPtr(0),
		TotalRows:     intPtr(totalRows),
		ProcessedRows: intPtr(0),
	})
	if err != nil {
		return s.fail(jobID, totalRows, 0, fmt.Errorf("failed to start processing: %w", err))
	}

	processedRows := 0
	successfulRows := 0
	for _, rec := range validRecords {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return s.fail(jobID, totalRows, processedRows, fmt.Errorf("ingestion aborted: %w", ctxErr))
		}

		if _, upsertErr := s.reports.Upsert(rec); upsertErr != nil {
			// A single bad row must not sink the batch; it simply never
			// counts as processed.
			logger.Error().
				Err(upsertErr).
				Str("job_id", jobID).
				Str("ngo_id", rec.NgoID).
				Msg("failed to save report row, skipping")
			continue
		}

		successfulRows++
		processedRows++
		progress := int(math.Round(float64(processedRows) / float64(totalRows) * 100))
		if updErr := s.jobs.Update(jobID, JobUpdate{
			Status:        models.JobStatusProcessing,
			Progress:      intPtr(progress),
			ProcessedRows: intPtr(processedRows),
		}); updErr != nil {
			logger.Error().Err(updErr).Str("job_id", jobID).Msg("failed to update job progress")
		}
	}

	outcome := ValidationOutcome{
		TotalRows:      totalRows,
		ValidRows:      len(validRecords),
		InvalidRows:    len(rowErrors),
		SuccessfulRows: successfulRows,
		Errors:         rowErrors,
	}

	finalStatus := models.JobStatusCompleted
	errorMessage := ""
	if len(rowErrors) > 0 {
		finalStatus = models.JobStatusCompletedWithErrors
		serialized, marshalErr := json.Marshal(outcome)
		if marshalErr != nil {
			return s.fail(jobID, totalRows, processedRows, fmt.Errorf("failed to serialize validation outcome: %w", marshalErr))
		}
		errorMessage = string(serialized)
	}

	err = s.jobs.Update(jobID, JobUpdate{
		Status:        finalStatus,
		Progress:      intPtr(100),
		TotalRows:     intPtr(totalRows),
		ProcessedRows: intPtr(processedRows),
		ErrorMessage:  strPtr(errorMessage),
	})
	if err != nil {
		return s.fail(jobID, totalRows, processedRows, fmt.Errorf("failed to finalize job: %w", err))
	}

	logger.Info().
		Str("job_id", jobID).
		Str("status", finalStatus).
		Int("total_rows", totalRows).
		Int("successful_rows", successfulRows).
		Int("invalid_rows", len(rowErrors)).
		Msg("bulk ingestion finished")
	return nil
}

// fail moves the job to its failed terminal state and returns the cause.
func (s *IngestionService) fail(jobID string, totalRows, processedRows int, cause error) error {
	logger.Error().Err(cause).Str("job_id", jobID).Msg("bulk ingestion failed")
	updErr := s.jobs.Update(jobID, JobUpdate{
		Status:        models.JobStatusFailed,
		TotalRows:     intPtr(totalRows),
		ProcessedRows: intPtr(processedRows),
		ErrorMessage:  strPtr(cause.Error()),
	})
	if updErr != nil {
		logger.Error().Err(updErr).Str("job_id", jobID).Msg("failed to record job failure")
	}
	return cause
}

// openRowReader picks a decoder by file extension. CSV is the primary
// format; XLSX is accepted and decoded to the same row stream.
func openRowReader(filename string, data []byte) (rowReader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return newXLSXRowReader(data)
	default:
		return newCSVRowReader(data)
	}
}

type csvRowReader struct {
	headers []string
	r       *csv.Reader
}

func newCSVRowReader(data []byte) (*csvRowReader, error) {
	data = bytes.TrimPrefix(data, byteOrderMark)
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows are a validation problem, not a parse error
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	return &csvRowReader{headers: headers, r: r}, nil
}

func (c *csvRowReader) Headers() []string { return c.headers }

func (c *csvRowReader) Next() ([]string, error) { return c.r.Read() }

type xlsxRowReader struct {
	headers []string
	rows    *excelize.Rows
}

func newXLSXRowReader(data []byte) (*xlsxRowReader, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX rows: %w", err)
	}
	if !rows.Next() {
		return nil, fmt.Errorf("XLSX file is empty")
	}
	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	return &xlsxRowReader{headers: headers, rows: rows}, nil
}

func (x *xlsxRowReader) Headers() []string { return x.headers }

func (x *xlsxRowReader) Next() ([]string, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return x.rows.Columns()
}
