package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Statement is a renderable result statement: an identity block followed
// by a tabular grade listing.
type Statement struct {
	Title   string
	Lines   []string
	Headers []string
	Rows    []map[string]string
}

// StatementExporter renders statements into downloadable documents.
type StatementExporter struct{}

// NewStatementExporter constructs a statement exporter.
func NewStatementExporter() *StatementExporter {
	return &StatementExporter{}
}

// RenderPDF creates an A4 PDF for the statement.
func (e *StatementExporter) RenderPDF(stmt Statement) ([]byte, error) {
	if len(stmt.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if stmt.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(stmt.Title), "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "", 10)
	for _, line := range stmt.Lines {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	if len(stmt.Lines) > 0 {
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(stmt.Headers))
	for _, header := range stmt.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range stmt.Rows {
		for _, header := range stmt.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCSV produces a CSV encoding of the statement table. The identity
// lines are emitted as comment-style leading records.
func (e *StatementExporter) RenderCSV(stmt Statement) ([]byte, error) {
	if len(stmt.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	for _, line := range stmt.Lines {
		if err := writer.Write([]string{line}); err != nil {
			return nil, fmt.Errorf("write csv preamble: %w", err)
		}
	}
	if err := writer.Write(stmt.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range stmt.Rows {
		record := make([]string, len(stmt.Headers))
		for i, header := range stmt.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
