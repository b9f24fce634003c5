package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

const (
	SheetLeads    = "Leads"
	SheetUsers    = "Usuários"
	SheetCourses  = "Cursos"
	SheetStatuses = "Status"

	defaultSheet = "Sheet1"
)

// XLSXEncoder writes leads and backups as Excel workbooks.
type XLSXEncoder struct{}

func NewXLSXEncoder() XLSXEncoder { return XLSXEncoder{} }

// EncodeLeads writes a single "Leads" sheet.
func (XLSXEncoder) EncodeLeads(w io.Writer, leads []*domain.Lead) error {
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, leadRow(l))
	}
	return writeWorkbook(w, []sheet{{SheetLeads, leadHeader, rows}})
}

// EncodeBackup writes one sheet per collection. Password hashes are never exported.
func (XLSXEncoder) EncodeBackup(w io.Writer, b ports.Backup) error {
	users := make([][]string, 0, len(b.Users))
	for _, u := range b.Users {
		users = append(users, userRow(u))
	}
	leads := make([][]string, 0, len(b.Leads))
	for _, l := range b.Leads {
		leads = append(leads, leadRow(l))
	}
	courses := make([][]string, 0, len(b.Courses))
	for _, c := range b.Courses {
		courses = append(courses, courseRow(c))
	}
	statuses := make([][]string, 0, len(b.Statuses))
	for _, s := range b.Statuses {
		statuses = append(statuses, statusRow(s))
	}

	return writeWorkbook(w, []sheet{
		{SheetUsers, userHeader, users},
		{SheetLeads, leadHeader, leads},
		{SheetCourses, courseHeader, courses},
		{SheetStatuses, statusHeader, statuses},
	})
}

type sheet struct {
	name   string
	header []string
	rows   [][]string
}

func writeWorkbook(w io.Writer, sheets []sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("new sheet %s: %w", s.name, err)
		}

		if err := writeRow(f, s.name, 1, s.header); err != nil {
			return err
		}
		for r, row := range s.rows {
			if err := writeRow(f, s.name, r+2, row); err != nil {
				return err
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheetName string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheetName, row, err)
	}
	return nil
}
