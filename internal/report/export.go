package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/xuri/excelize/v2"
)

const (
	LedgerSheet     = "Ledger"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ledgerColumns = []interface{}{"Date", "Time", "Merchant", "Category", "Amount", "Tags", "Note"}

// WriteLedgerXLSX writes txs newest first as a single-sheet workbook.
func WriteLedgerXLSX(w io.Writer, categories []finance.Category, txs []finance.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LedgerSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(LedgerSheet, "A1", &ledgerColumns); err != nil {
		return err
	}
	if err := f.SetCellStyle(LedgerSheet, "A1", "G1", header); err != nil {
		return err
	}

	labels := make(map[string]string, len(categories))
	for _, c := range categories {
		labels[c.Slug] = c.Label
	}

	sorted := finance.SortNewestFirst(txs)
	for i, tx := range sorted {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		label := labels[tx.CategorySlug]
		if label == "" {
			label = tx.CategorySlug
		}
		note := ""
		if tx.Note != nil {
			note = *tx.Note
		}

		row := []interface{}{
			tx.OccurredAt.Local().Format("2006-01-02"),
			finance.FormatTimeLabel(tx.OccurredAt),
			tx.Merchant,
			label,
			tx.Amount.InexactFloat64(),
			strings.Join(tx.Tags, ", "),
			note,
		}
		if err := f.SetSheetRow(LedgerSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(sorted) > 0 {
		last := fmt.Sprintf("E%d", len(sorted)+1)
		if err := f.SetCellStyle(LedgerSheet, "E2", last, money); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(LedgerSheet, "A", "G", 18); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
