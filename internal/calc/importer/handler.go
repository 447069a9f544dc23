package importer

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	batch "Pergulator/internal/calc/batch"
	pergola "Pergulator/internal/calc/pergola"

	"github.com/xuri/excelize/v2"
)

const MaxUploadSize = 10 << 20 // 10MB

var header = []interface{}{"Length (m)", "Number of Joists", "Joist width (cm)", "Side strip len (cm)", "Spacing (cm)"}

type Handler struct{}

type RowResult struct {
	Row    int             `json:"row"`
	Input  pergola.Input   `json:"input"`
	Result *pergola.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type PergolaImportResult struct {
	Count  int         `json:"count"`
	Failed int         `json:"failed"`
	Rows   []RowResult `json:"rows"`
}

func (h *Handler) Pergola(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(importRows(rows[1:]))
}

// importRows numbers rows as the spreadsheet does, counting the header as 1.
func importRows(rows [][]string) PergolaImportResult {
	out := PergolaImportResult{Rows: make([]RowResult, 0, len(rows))}
	for i, row := range rows {
		if blank(row) {
			continue
		}
		rr := RowResult{Row: i + 2}
		input, err := parsePergolaRow(row)
		rr.Input = input
		if err == nil {
			var res pergola.Result
			res, err = pergola.Calculate(input)
			if err == nil {
				rr.Result = &res
			}
		}
		if err != nil {
			rr.Error = err.Error()
			out.Failed++
		} else {
			out.Count++
		}
		out.Rows = append(out.Rows, rr)
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// expected: length_m, num_of_joists, joist_width_cm, side_strip_len_cm; blank cells keep defaults
func parsePergolaRow(row []string) (pergola.Input, error) {
	in := pergola.Defaults()
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	floats := []struct {
		col int
		dst *float64
	}{
		{0, &in.PergolaLenM},
		{2, &in.JoistWidthCM},
		{3, &in.SideStripLenCM},
	}
	for _, c := range floats {
		if s := cell(c.col); s != "" {
			v, err := toFloat(s)
			if err != nil {
				return in, fmt.Errorf("column %d: invalid number %q", c.col+1, s)
			}
			*c.dst = v
		}
	}
	if s := cell(1); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return in, fmt.Errorf("column 2: invalid integer %q", s)
		}
		in.NumOfJoists = n
	}
	return in, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

// Export writes a workbook with one row per batch item.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input batch.PergolaBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := batch.CalculatePergola(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}

	f, err := buildWorkbook(input.Items, res.Results)
	if err != nil {
		log.Printf("pergola export: %v", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"pergola.xlsx\"")
	if err := f.Write(w); err != nil {
		log.Printf("pergola export: write: %v", err)
	}
}

func buildWorkbook(items []pergola.Input, results []pergola.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	for i, in := range items {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{in.PergolaLenM, in.NumOfJoists, in.JoistWidthCM, in.SideStripLenCM, results[i].JoistSpacingCM}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
