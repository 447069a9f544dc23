package report

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	pergola "Pergulator/internal/calc/pergola"

	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string        `json:"project"`
	Author  string        `json:"author"`
	Title   string        `json:"title"`
	Notes   string        `json:"notes"`
	Input   pergola.Input `json:"input"`
}

type Handler struct {
	// Now stamps the report date; nil means time.Now.
	Now func() time.Time
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	input := Input{Input: pergola.Defaults()}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Pergola Joist Layout"
	}
	res, err := pergola.Calculate(input.Input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	pdf := Build(input, res, now())

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"pergola-report.pdf\"")
	if err := pdf.Output(w); err != nil {
		log.Printf("pergola report: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// Build lays out a one-page A4 report for a computed layout.
func Build(input Input, res pergola.Result, date time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(10)

	rows := [][2]string{
		{"Length (m)", fmt.Sprintf("%.2f", input.Input.PergolaLenM)},
		{"Number of Joists", fmt.Sprintf("%d", input.Input.NumOfJoists)},
		{"Joist width (cm)", fmt.Sprintf("%.2f", input.Input.JoistWidthCM)},
		{"Side strip len (cm)", fmt.Sprintf("%.1f", input.Input.SideStripLenCM)},
		{"Joist area length (cm)", fmt.Sprintf("%.2f", res.JoistAreaLenCM)},
		{"Total spacing area (cm)", fmt.Sprintf("%.2f", res.TotalSpacingAreaCM)},
	}
	for _, row := range rows {
		pdf.CellFormat(70, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetFillColor(0x4C, 0xAF, 0x50)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(110, 14, res.Display, "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)

	if input.Notes != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}
	return pdf
}
