package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 277.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
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

// SeatGrid describes one room's seat matrix for chart rendering. Cells hold
// short labels (roll numbers); empty string means an unoccupied seat.
type SeatGrid struct {
	Room  string
	Cells [][]string
}

// RenderSeatingChart draws each room as a bordered grid, one room per page.
func (e *PDFExporter) RenderSeatingChart(grids []SeatGrid, title string) ([]byte, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("seating chart requires at least one room")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	for _, grid := range grids {
		pdf.AddPage()
		if title != "" {
			pdf.SetFont("Arial", "B", 14)
			pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("Room %s", grid.Room), "", 1, "C", false, 0, "")
		pdf.Ln(4)

		cols := 0
		for _, row := range grid.Cells {
			if len(row) > cols {
				cols = len(row)
			}
		}
		if cols == 0 {
			continue
		}
		cellWidth := 277.0 / float64(cols)
		if cellWidth > 40 {
			cellWidth = 40
		}

		pdf.SetFont("Arial", "", 9)
		for _, row := range grid.Cells {
			for _, label := range row {
				fill := label == ""
				pdf.CellFormat(cellWidth, 10, label, "1", 0, "C", fill, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render seating chart: %w", err)
	}
	return buf.Bytes(), nil
}
