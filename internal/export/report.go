// Package export renders a finished challenge as a one-page PDF.
package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/cyberhygiene/internal/challenge"
)

// DefaultFilename is offered when the player does not choose a path.
const DefaultFilename = "cyber-hygiene-summary.pdf"

// Report is the content of an exported summary.
type Report struct {
	CategoryTitle string
	Score         challenge.Score
	Percentage    int
	Message       string
	GeneratedAt   time.Time
}

// NewReport builds the report for a challenge.
func NewReport(c *challenge.Challenge, now time.Time) Report {
	return Report{
		CategoryTitle: c.Category.Title(),
		Score:         c.Score,
		Percentage:    c.Score.Percentage(),
		Message:       c.Score.Message(),
		GeneratedAt:   now,
	}
}

// Gauge geometry, in millimetres on an A4 page.
const (
	gaugeX     = 105.0
	gaugeY     = 105.0
	gaugeR     = 35.0
	gaugeWidth = 8.0
)

// WritePDF renders r to w.
func WritePDF(w io.Writer, r Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Everything is placed absolutely; the footer sits below the default
	// break margin and must not open a second page.
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("%s results", r.CategoryTitle), true)
	pdf.SetCreator("cyberhygiene", true)
	if !r.GeneratedAt.IsZero() {
		pdf.SetCreationDate(r.GeneratedAt)
	}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetY(30)
	pdf.CellFormat(0, 12, r.CategoryTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 8, "Challenge complete!", "", 1, "C", false, 0, "")

	drawGauge(pdf, r.Percentage)

	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(gaugeX-gaugeR, gaugeY-7)
	pdf.CellFormat(2*gaugeR, 14, fmt.Sprintf("%d%%", r.Percentage), "", 0, "C", false, 0, "")

	pdf.SetY(gaugeY + gaugeR + 15)
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("You answered %d of %d correctly.", r.Score.Correct, r.Score.Total), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 13)
	pdf.SetX(25)
	pdf.MultiCell(160, 7, r.Message, "", "C", false)

	if !r.GeneratedAt.IsZero() {
		pdf.SetY(-25)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04"), "", 0, "C", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return pdf.Output(w)
}

// drawGauge draws the grey track and the coloured progress arc. The arc
// starts at twelve o'clock and runs clockwise.
func drawGauge(pdf *fpdf.Fpdf, pct int) {
	pct = max(0, min(pct, 100))

	pdf.SetLineWidth(gaugeWidth)
	pdf.SetDrawColor(222, 226, 230)
	pdf.Circle(gaugeX, gaugeY, gaugeR, "D")

	if pct == 0 {
		return
	}
	red, green, blue := gaugeColor(pct)
	pdf.SetDrawColor(red, green, blue)
	if pct == 100 {
		pdf.Circle(gaugeX, gaugeY, gaugeR, "D")
		return
	}
	sweep := 360 * float64(pct) / 100
	pdf.Arc(gaugeX, gaugeY, gaugeR, gaugeR, 0, 90-sweep, 90, "D")
}

// gaugeColor moves from red through amber to green as the score rises.
func gaugeColor(pct int) (int, int, int) {
	switch {
	case pct >= 80:
		return 40, 167, 69
	case pct >= 50:
		return 255, 193, 7
	default:
		return 220, 53, 69
	}
}

// SavePDF writes the report to path, replacing any existing file.
func SavePDF(path string, r Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return WritePDF(f, r)
}
