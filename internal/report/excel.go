package report

import (
	"fmt"
	"io"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/xuri/excelize/v2"
)

const (
	SessionsSheet = "Sessions"
	SummarySheet  = "Summary"

	dateLayout = "2006-01-02"
)

var (
	sessionColumns = []string{
		"Week start", "Student", "Parent", "Subject", "Grade",
		"Date", "Weekday", "Scheduled as", "Status", "Hours",
		"Teacher share", "Company share", "Paid",
	}
	summaryColumns = []string{
		"Week start", "Week end", "Student", "Subject", "Sessions",
		"Teacher earnings", "Company earnings",
	}
)

// sheetWriter пишет строки подряд в один лист
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

func (w *sheetWriter) writeHeader(columns []string) error {
	if err := w.writeRow(toValues(columns)); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.row-1)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.row-1)
		_ = w.file.SetCellStyle(w.sheet, startCell, endCell, style)
	}
	return nil
}

func (w *sheetWriter) writeRow(values []interface{}) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, val); err != nil {
			return err
		}
	}
	w.row++
	return nil
}

// WriteProjection выгружает расписание учителя за период в xlsx:
// лист с занятиями по дням и лист с итогами по неделям
func WriteProjection(out io.Writer, p *service.Projection) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SessionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", SummarySheet, err)
	}

	if err := writeSessions(&sheetWriter{file: f, sheet: SessionsSheet, row: 1}, p); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	if err := writeSummary(&sheetWriter{file: f, sheet: SummarySheet, row: 1}, p); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeSessions(w *sheetWriter, p *service.Projection) error {
	if err := w.writeHeader(sessionColumns); err != nil {
		return err
	}

	for _, row := range p.Rows {
		for _, day := range row.Days {
			err := w.writeRow([]interface{}{
				row.WeekStart.Format(dateLayout),
				row.StudentName,
				row.ParentName,
				row.Subject,
				row.Grade,
				day.Date.Format(dateLayout),
				day.Weekday.Short(),
				day.ScheduleKey.Short(),
				string(day.Status),
				day.Duration,
				day.TeacherShare,
				day.CompanyShare,
				yesNo(day.Paid),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSummary(w *sheetWriter, p *service.Projection) error {
	if err := w.writeHeader(summaryColumns); err != nil {
		return err
	}

	for _, row := range p.Rows {
		err := w.writeRow([]interface{}{
			row.WeekStart.Format(dateLayout),
			row.WeekEnd.Format(dateLayout),
			row.StudentName,
			row.Subject,
			len(row.Days),
			row.WeekEarnings,
			row.CompanyEarnings,
		})
		if err != nil {
			return err
		}
	}

	sessions := 0
	for _, n := range p.Totals.Sessions {
		sessions += n
	}

	if err := w.writeRow([]interface{}{
		p.Period.Start.Format(dateLayout),
		p.Period.End.Format(dateLayout),
		"TOTAL",
		p.TeacherName,
		sessions,
		p.Totals.TeacherEarnings,
		p.Totals.CompanyEarnings,
	}); err != nil {
		return err
	}

	// разбивка по кодам в порядке отображения
	for _, code := range model.SessionCodes {
		n := p.Totals.Sessions[code]
		if n == 0 {
			continue
		}
		if err := w.writeRow([]interface{}{"", "", "", string(code), n}); err != nil {
			return err
		}
	}
	return nil
}

// FileName имя файла выгрузки
func FileName(p *service.Projection) string {
	return fmt.Sprintf("schedule_%d_%s_%s.xlsx", p.TeacherID, p.Period.Mode, p.Period.Start.Format(dateLayout))
}

func toValues(columns []string) []interface{} {
	values := make([]interface{}, len(columns))
	for i, c := range columns {
		values[i] = c
	}
	return values
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
