package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/crixfer/DIID-GS/internal/attendance"
	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
	"github.com/crixfer/DIID-GS/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes with download metadata.
type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ExportServiceConfig wires export tunables.
type ExportServiceConfig struct {
	Enabled    bool
	MaxRows    int
	SheetTitle string
}

// ExportService renders roster, grade and attendance sheets as CSV or PDF.
type ExportService struct {
	students    studentRepository
	grades      gradeRepository
	attendances attendanceRepository
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	cfg         ExportServiceConfig
	logger      *zap.Logger
}

// NewExportService creates a new export service instance.
func NewExportService(students studentRepository, grades gradeRepository, attendances attendanceRepository, cfg ExportServiceConfig, logger *zap.Logger) *ExportService {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students:    students,
		grades:      grades,
		attendances: attendances,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		cfg:         cfg,
		logger:      logger,
	}
}

// Roster exports the quarter's enrolled students.
func (s *ExportService) Roster(ctx context.Context, quarterID string, format ExportFormat) (*ExportResult, error) {
	if err := s.check(format); err != nil {
		return nil, err
	}

	roster, err := s.students.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if len(roster) > s.cfg.MaxRows {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "export exceeds row limit")
	}

	dataset := export.Dataset{
		Headers: []string{"Student ID", "Last Name", "First Name", "Email", "Enrolled"},
	}
	for _, student := range roster {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student ID": student.StudentCode,
			"Last Name":  student.LastName,
			"First Name": student.FirstName,
			"Email":      student.Email,
			"Enrolled":   student.EnrollmentDate.Format("2006-01-02"),
		})
	}
	return s.render(dataset, "roster", quarterID, format)
}

// Grades exports the quarter's component scores and derived totals, one
// column per component across the three grading windows.
func (s *ExportService) Grades(ctx context.Context, quarterID string, format ExportFormat) (*ExportResult, error) {
	if err := s.check(format); err != nil {
		return nil, err
	}

	roster, err := s.students.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	grades, err := s.grades.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}
	if len(roster) > s.cfg.MaxRows {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "export exceeds row limit")
	}

	byStudent := make(map[string]models.StudentGrade, len(grades))
	for _, grade := range grades {
		byStudent[grade.StudentID] = grade
	}

	dataset := export.Dataset{
		Headers: []string{
			"Student ID", "Name",
			"P1 Part/HW", "P1 Present", "P1 Quiz", "P1 Comp", "P1 Oral",
			"P2 Part/HW", "P2 Present", "P2 Quiz", "P2 Comp", "P2 Oral",
			"Final Oral", "Final Grammar",
			"Total", "Letter",
		},
	}
	for _, student := range roster {
		grade := byStudent[student.ID]
		p1 := grade.Grades.Period1
		p2 := grade.Grades.Period2
		fp := grade.Grades.FinalPeriod
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student ID":    student.StudentCode,
			"Name":          student.FirstName + " " + student.LastName,
			"P1 Part/HW":    formatScore(p1.ParticipationHomework),
			"P1 Present":    formatScore(p1.Presentations),
			"P1 Quiz":       formatScore(p1.Quizzes),
			"P1 Comp":       formatScore(p1.CompositionExam),
			"P1 Oral":       formatScore(p1.OralExam),
			"P2 Part/HW":    formatScore(p2.ParticipationHomework),
			"P2 Present":    formatScore(p2.Presentations),
			"P2 Quiz":       formatScore(p2.Quizzes),
			"P2 Comp":       formatScore(p2.CompositionExam),
			"P2 Oral":       formatScore(p2.OralExam),
			"Final Oral":    formatScore(fp.FinalOralExam),
			"Final Grammar": formatScore(fp.FinalGrammarExam),
			"Total":         formatScore(grade.TotalScore),
			"Letter":        grade.LetterGrade,
		})
	}
	return s.render(dataset, "grades", quarterID, format)
}

// Attendance exports per-student attendance tallies for the quarter.
func (s *ExportService) Attendance(ctx context.Context, quarterID string, format ExportFormat) (*ExportResult, error) {
	if err := s.check(format); err != nil {
		return nil, err
	}

	roster, err := s.students.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	records, err := s.attendances.ListByQuarter(ctx, quarterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	if len(roster) > s.cfg.MaxRows {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "export exceeds row limit")
	}

	breakdown := attendance.Breakdown(records)

	dataset := export.Dataset{
		Headers: []string{"Student ID", "Name", "Present", "Absent", "Excused", "Late", "Rate"},
	}
	for _, student := range roster {
		entry := breakdown[student.ID]
		stats := attendance.StudentStats(records, student.ID)
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student ID": student.StudentCode,
			"Name":       student.FirstName + " " + student.LastName,
			"Present":    strconv.Itoa(entry.Present),
			"Absent":     strconv.Itoa(entry.Absent),
			"Excused":    strconv.Itoa(entry.Excused),
			"Late":       strconv.Itoa(entry.Late),
			"Rate":       fmt.Sprintf("%.1f%%", stats.Rate),
		})
	}
	return s.render(dataset, "attendance", quarterID, format)
}

func (s *ExportService) check(format ExportFormat) error {
	if !s.cfg.Enabled {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "exports are disabled")
	}
	switch format {
	case ExportFormatCSV, ExportFormatPDF:
		return nil
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func (s *ExportService) render(dataset export.Dataset, kind, quarterID string, format ExportFormat) (*ExportResult, error) {
	stamp := time.Now().UTC().Format("20060102")
	filename := fmt.Sprintf("%s-%s-%s.%s", kind, quarterID, stamp, format)

	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Data: data, Filename: filename, ContentType: "text/csv"}, nil
	case ExportFormatPDF:
		title := strings.TrimSpace(s.cfg.SheetTitle + " " + kind)
		data, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Data: data, Filename: filename, ContentType: "application/pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
