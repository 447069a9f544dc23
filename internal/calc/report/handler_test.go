package report_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pergulator/internal/calc/pergola"
	"Pergulator/internal/calc/report"
)

func fixedNow() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }

func TestGenerate(t *testing.T) {
	h := &report.Handler{Now: fixedNow}
	body := `{"project":"Garden","author":"QA","input":{"pergola_len_m":5,"num_of_joists":3,"joist_width_cm":10,"side_strip_len_cm":0}}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/pergola/report", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestGenerate_Errors(t *testing.T) {
	h := &report.Handler{Now: fixedNow}

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/pergola/report", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request payload")

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/pergola/report", strings.NewReader(`{"input":{"num_of_joists":1}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least two joists required")
}

func TestBuild(t *testing.T) {
	res, err := pergola.Calculate(pergola.Defaults())
	require.NoError(t, err)

	pdf := report.Build(report.Input{Title: "Layout", Notes: "Cedar joists.", Input: pergola.Defaults()}, res, fixedNow())
	require.NoError(t, pdf.Error())
	assert.Equal(t, 1, pdf.PageCount())

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.NotZero(t, buf.Len())
}
