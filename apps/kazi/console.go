package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/payroll"
	exportsvc "github.com/trezcool/kazi/services/export"
)

// consoleConfirmer blocks on a y/N prompt before destructive actions.
type consoleConfirmer struct{}

var _ core.Confirmer = consoleConfirmer{}

func (consoleConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// consoleNotifier prints workflow outcomes.
type consoleNotifier struct{}

var _ core.Notifier = consoleNotifier{}

func (consoleNotifier) Success(msg string) { fmt.Println("ok:", msg) }
func (consoleNotifier) Failure(msg string) { fmt.Println("failed:", msg) }

// renderTable prints visible rows; an empty loaded collection gets an
// explicit "no records" row instead of a blank table.
func renderTable(t core.Table) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Headers, "\t"))
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "(no records)")
	}
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

// exportTable writes the rows under -export to the -out file; every visible
// row at call time lands in the document, in render order.
func exportTable(t core.Table, format, out string) error {
	if out == "" {
		out = strings.ToLower(strings.ReplaceAll(t.Title, " ", "_")) + "." + format
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	defer f.Close()

	switch format {
	case "csv":
		err = exportsvc.WriteCSV(f, t)
	case "xlsx":
		err = exportsvc.WriteXLSX(f, t)
	case "pdf":
		err = exportsvc.WritePDF(f, t)
	default:
		return errors.Errorf("unknown export format %q (want csv, xlsx or pdf)", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("exported to", out)
	return nil
}

func writePayslip(slip payroll.Payslip, out string) error {
	if out == "" {
		out = "payslip_" + slip.Period + ".pdf"
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "creating payslip file")
	}
	defer f.Close()

	if err := exportsvc.WritePayslip(f, slip); err != nil {
		return err
	}
	fmt.Println("payslip written to", out)
	return nil
}
