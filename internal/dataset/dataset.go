// Package dataset loads the regional agricultural production table used by the
// optional chart endpoint. Tables are memoized per URL until invalidated.
package dataset

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const IndexColumn = "Region"

// DefaultRegions is the selection used when a request names none.
var DefaultRegions = []string{"China", "United States of America"}

var (
	ErrNoIndex       = errors.New("dataset: missing Region column")
	ErrNoSelection   = errors.New("dataset: no regions selected")
	ErrUnknownRegion = errors.New("dataset: unknown region")
)

// FetchError is a network failure while retrieving a table.
type FetchError struct {
	URL    string
	Reason error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Reason }

// UserMessage renders err for display. Fetch failures get the
// internet-access notice; anything else is returned verbatim.
func UserMessage(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fmt.Sprintf("This demo requires internet access. Connection error: %v", fe.Reason)
	}
	return err.Error()
}

// Table is a CSV indexed by its Region column. Columns excludes the index.
type Table struct {
	Columns []string
	Regions []string
	rows    map[string][]float64
}

type Series struct {
	Region string    `json:"region"`
	Values []float64 `json:"values"`
}

// Select returns the rows for regions sorted by region name, scaled to
// billions. Repeated names are returned once.
func (t *Table) Select(regions []string) ([]Series, error) {
	if len(regions) == 0 {
		return nil, ErrNoSelection
	}
	out := make([]Series, 0, len(regions))
	seen := make(map[string]bool, len(regions))
	for _, region := range regions {
		if seen[region] {
			continue
		}
		seen[region] = true
		row, ok := t.rows[region]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
		}
		values := make([]float64, len(row))
		for i, v := range row {
			values[i] = v / 1e6
		}
		out = append(out, Series{Region: region, Values: values})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out, nil
}

// Parse reads a CSV with a Region column; empty cells become zero.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	idx := -1
	for i, name := range head {
		if strings.TrimSpace(name) == IndexColumn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNoIndex
	}

	t := &Table{rows: make(map[string][]float64)}
	for i, name := range head {
		if i != idx {
			t.Columns = append(t.Columns, name)
		}
	}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: %w", line, err)
		}
		values := make([]float64, 0, len(t.Columns))
		for i, cell := range rec {
			if i == idx {
				continue
			}
			v := 0.0
			if s := strings.TrimSpace(cell); s != "" {
				if v, err = strconv.ParseFloat(s, 64); err != nil {
					return nil, fmt.Errorf("dataset: line %d column %q: %w", line, head[i], err)
				}
			}
			values = append(values, v)
		}
		region := rec[idx]
		if _, dup := t.rows[region]; !dup {
			t.Regions = append(t.Regions, region)
		}
		t.rows[region] = values
	}
	return t, nil
}

// Loader fetches tables over HTTP and caches them by URL.
type Loader struct {
	client *http.Client

	mu    sync.Mutex
	cache map[string]*Table
}

func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Loader{client: client, cache: make(map[string]*Table)}
}

// Load returns the cached table for url or fetches it. URLs ending in .gz are
// gunzipped. Failed fetches are not cached.
func (l *Loader) Load(ctx context.Context, url string) (*Table, error) {
	l.mu.Lock()
	t, ok := l.cache[url]
	l.mu.Unlock()
	if ok {
		return t, nil
	}

	t, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[url] = t
	l.mu.Unlock()
	return t, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err}
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Reason: fmt.Errorf("unexpected status %s", res.Status)}
	}

	var body io.Reader = res.Body
	if strings.HasSuffix(url, ".gz") {
		zr, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("dataset: gunzip: %w", err)
		}
		defer zr.Close()
		body = zr
	}
	return Parse(body)
}

func (l *Loader) Invalidate(url string) {
	l.mu.Lock()
	delete(l.cache, url)
	l.mu.Unlock()
}

func (l *Loader) Purge() {
	l.mu.Lock()
	l.cache = make(map[string]*Table)
	l.mu.Unlock()
}
