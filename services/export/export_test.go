package exportsvc

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/payroll"
)

func sampleTable() core.Table {
	return core.Table{
		Title:   "Employees",
		Headers: []string{"ID", "Name", "Department"},
		Rows: [][]string{
			{"1", "Amina Juma", "Finance"},
			{"2", "Baraka Osei", "Engineering"},
			{"3", "Neema Said", "Sales"},
			{"4", "Juma, Jr.", "Operations"}, // comma needs quoting
			{"5", "Zawadi Mrema", "Marketing"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	table := sampleTable()
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv failed: %v", err)
	}
	// header + one line per visible row, same order
	if len(records) != len(table.Rows)+1 {
		t.Fatalf("lines = %d, want %d", len(records), len(table.Rows)+1)
	}
	for i, h := range table.Headers {
		if records[0][i] != h {
			t.Errorf("header[%d] = %s, want %s", i, records[0][i], h)
		}
	}
	for i, row := range table.Rows {
		for j, val := range row {
			if records[i+1][j] != val {
				t.Errorf("row %d col %d = %q, want %q", i, j, records[i+1][j], val)
			}
		}
	}
}

func TestWriteCSV_emptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, core.Table{Headers: []string{"A", "B"}}); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("lines = %d, want only the header", len(lines))
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	table := sampleTable()
	if err := WriteXLSX(&buf, table); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening workbook failed: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); got != table.Title {
		t.Errorf("sheet name = %q, want %q", got, table.Title)
	}
	rows, err := f.GetRows(table.Title)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != len(table.Rows)+1 {
		t.Fatalf("rows = %d, want %d", len(rows), len(table.Rows)+1)
	}
	if rows[0][1] != "Name" {
		t.Errorf("header cell B1 = %q, want Name", rows[0][1])
	}
	if rows[2][1] != "Baraka Osei" {
		t.Errorf("cell B3 = %q, want Baraka Osei", rows[2][1])
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleTable()); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a pdf header")
	}
}

func TestWritePayslip(t *testing.T) {
	slip := payroll.Payslip{
		Payroll: payroll.Payroll{
			EmployeeName: "Amina Juma",
			Period:       "2025-07",
			Basic:        2000,
			Allowances:   350,
			Deductions:   120,
			Net:          2230,
			Status:       payroll.StatusDraft,
		},
		CompanyName: "Kazi Demo Ltd",
		Position:    "Accountant",
		Department:  "Finance",
	}

	var buf bytes.Buffer
	if err := WritePayslip(&buf, slip); err != nil {
		t.Fatalf("WritePayslip() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a pdf header")
	}
	if buf.Len() < 500 {
		t.Errorf("payslip suspiciously small: %d bytes", buf.Len())
	}
}
