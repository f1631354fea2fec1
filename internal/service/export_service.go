package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"club-nexus/backend/internal/repository"
)

// ── export business errors ──

var (
	ErrExportNoApplications = errors.New("drive has no applications to export")
	ErrExportGenerateFail   = errors.New("generating excel file failed")
)

// ExportService turns a drive's application list into an Excel workbook.
// The buffer is returned to the handler, which sets the download headers.
type ExportService interface {
	ExportApplications(ctx context.Context, actor *Actor, driveID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportApplications(ctx context.Context, actor *Actor, driveID string) (*bytes.Buffer, string, error) {
	if !actor.Can(CapManageForms) {
		return nil, "", ErrPermissionDenied
	}

	drive, err := s.repo.Drive.GetByID(ctx, driveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrDriveNotFound
		}
		s.logger.Error("loading drive for export failed", zap.Error(err))
		return nil, "", err
	}

	apps, err := s.repo.Application.ListByDrive(ctx, driveID)
	if err != nil {
		s.logger.Error("loading applications for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(apps) == 0 {
		return nil, "", ErrExportNoApplications
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 22)
	f.SetColWidth(sheetName, "C", "D", 18)
	f.SetColWidth(sheetName, "E", "G", 12)
	f.SetColWidth(sheetName, "H", "I", 20)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - Applications", drive.Title))
	f.MergeCell(sheetName, "A1", "I1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{
		"Identifier", "Candidate", "Sig", "Status",
		"OA Score", "Assessment Score", "Interview Score",
		"Submitted At", "Interview Time",
	}
	row := 2
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
	}

	row = 3
	for _, app := range apps {
		sigName := "-"
		if app.Sig != nil {
			sigName = app.Sig.Name
		}
		f.SetCellValue(sheetName, cell("A", row), app.Identifier)
		f.SetCellValue(sheetName, cell("B", row), app.CandidateName)
		f.SetCellValue(sheetName, cell("C", row), sigName)
		f.SetCellValue(sheetName, cell("D", row), string(app.Status))
		setScore(f, sheetName, cell("E", row), app.OAScore)
		setScore(f, sheetName, cell("F", row), app.AssessmentScore)
		setScore(f, sheetName, cell("G", row), app.InterviewScore)
		setTime(f, sheetName, cell("H", row), app.AssessmentSubmittedAt)
		setTime(f, sheetName, cell("I", row), app.InterviewTime)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("applications_%s.xlsx", drive.DriveID)
	return buf, filename, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func setScore(f *excelize.File, sheet, ref string, v *float64) {
	if v == nil {
		f.SetCellValue(sheet, ref, "-")
		return
	}
	f.SetCellValue(sheet, ref, *v)
}

func setTime(f *excelize.File, sheet, ref string, t *time.Time) {
	if t == nil {
		f.SetCellValue(sheet, ref, "-")
		return
	}
	f.SetCellValue(sheet, ref, t.Format("2006-01-02 15:04"))
}
