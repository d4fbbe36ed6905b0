package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/export"
)

type attendanceLister interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered attendance document ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders attendance history as CSV or PDF.
type ExportService struct {
	records attendanceLister
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(records attendanceLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{records: records, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

var exportHeaders = []string{"Record ID", "Date", "Enroll ID", "Student ID", "Subject", "Status"}

// Export renders the history selected by req in the requested format.
func (s *ExportService) Export(ctx context.Context, req dto.ExportRequest) (*ExportFile, error) {
	format, err := export.ParseFormat(strings.ToLower(strings.TrimSpace(req.Format)))
	if err != nil {
		return nil, validationError(err, "format must be csv or pdf")
	}

	records, err := s.records.List(ctx, req.Filter())
	if err != nil {
		return nil, translateStoreError(err, "failed to list attendance")
	}

	dataset := buildAttendanceDataset(records)
	var body []byte
	switch format {
	case export.FormatPDF:
		body, err = s.pdf.Render(dataset, exportTitle(req.HistoryRequest))
	default:
		body, err = s.csv.Render(dataset)
	}
	if err != nil {
		s.logger.Error("render attendance export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, translateStoreError(err, "failed to render export")
	}

	return &ExportFile{
		Filename:    s.filename(req.HistoryRequest, format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func buildAttendanceDataset(records []models.AttendanceRecord) export.Dataset {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.FormatInt(rec.ID, 10),
			rec.Date,
			rec.EnrollID,
			strconv.FormatInt(rec.StudentID, 10),
			rec.SubjectName,
			string(rec.Status),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func exportTitle(req dto.HistoryRequest) string {
	title := "Attendance History"
	if req.SubjectID > 0 {
		title += fmt.Sprintf(" - subject %d", req.SubjectID)
	}
	if req.StudentID > 0 {
		title += fmt.Sprintf(" - student %d", req.StudentID)
	}
	return title
}

func (s *ExportService) filename(req dto.HistoryRequest, format export.Format) string {
	parts := []string{"attendance"}
	if req.SubjectID > 0 {
		parts = append(parts, fmt.Sprintf("subject-%d", req.SubjectID))
	}
	if req.StudentID > 0 {
		parts = append(parts, fmt.Sprintf("student-%d", req.StudentID))
	}
	parts = append(parts, s.now().UTC().Format("20060102_150405"))
	return strings.Join(parts, "_") + "." + string(format)
}
