package dataset

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
)

type Handler struct {
	Loader *Loader
	URL    string
}

type Response struct {
	Title   string   `json:"title"`
	Years   []string `json:"years"`
	Series  []Series `json:"series"`
	Regions []string `json:"regions"`
}

// Agri serves the selected regions (repeated region query parameter) in
// billions of dollars. Without a region parameter it serves DefaultRegions;
// a present but empty selection is rejected.
func (h *Handler) Agri(w http.ResponseWriter, r *http.Request) {
	t, err := h.Loader.Load(r.Context(), h.URL)
	if err != nil {
		log.Printf("dataset load: %v", err)
		http.Error(w, UserMessage(err), http.StatusBadGateway)
		return
	}

	regions, ok := r.URL.Query()["region"]
	if !ok {
		regions = DefaultRegions
	}
	series, err := t.Select(nonEmpty(regions))
	switch {
	case errors.Is(err, ErrNoSelection):
		http.Error(w, "Please select at least one country.", http.StatusBadRequest)
		return
	case errors.Is(err, ErrUnknownRegion):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{
		Title:   "Gross agricultural production ($B)",
		Years:   t.Columns,
		Series:  series,
		Regions: t.Regions,
	})
}

// Refresh drops the cached table so the next request refetches it.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Loader.Invalidate(h.URL)
	w.WriteHeader(http.StatusNoContent)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
