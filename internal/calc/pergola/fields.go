package pergola

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Field describes one bounded numeric input of the form.
type Field struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Placeholder string  `json:"placeholder"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Step        float64 `json:"step"`
	Integer     bool    `json:"integer"`
	Format      string  `json:"format"`
	Default     float64 `json:"default"`
}

// Fields lists the inputs in display order: length and joist width in the
// left column, joist count and side strip in the right.
func Fields() []Field {
	d := Defaults()
	return []Field{
		{Key: "pergola_len_m", Label: "Length (m)", Placeholder: "Enter length in meters",
			Min: MinLengthM, Max: MaxLengthM, Step: 0.01, Format: "%.2f", Default: d.PergolaLenM},
		{Key: "num_of_joists", Label: "Number of Joists", Placeholder: "Enter number of joists",
			Min: MinJoists, Max: MaxJoists, Step: 1, Integer: true, Format: "%.0f", Default: float64(d.NumOfJoists)},
		{Key: "joist_width_cm", Label: "Joist width (cm)", Placeholder: "Enter joist width in cm",
			Min: MinWidthCM, Max: MaxWidthCM, Step: 0.01, Format: "%.2f", Default: d.JoistWidthCM},
		{Key: "side_strip_len_cm", Label: "Side strip len (cm)", Placeholder: "Enter side strip len in cm",
			Min: MinSideStripCM, Max: MaxSideStripCM, Step: 0.1, Format: "%.1f", Default: d.SideStripLenCM},
	}
}

// Value returns the field's entry in the snapshot.
func (f Field) Value(in Input) float64 {
	switch f.Key {
	case "pergola_len_m":
		return in.PergolaLenM
	case "num_of_joists":
		return float64(in.NumOfJoists)
	case "joist_width_cm":
		return in.JoistWidthCM
	case "side_strip_len_cm":
		return in.SideStripLenCM
	}
	return 0
}

func (f Field) FormatValue(v float64) string {
	return fmt.Sprintf(f.Format, v)
}

// ParseQuery reads a snapshot from URL query values. Absent or blank keys keep
// their defaults; range checks are left to Validate.
func ParseQuery(q url.Values) (Input, error) {
	in := Defaults()
	for _, f := range Fields() {
		raw := strings.TrimSpace(q.Get(f.Key))
		if raw == "" {
			continue
		}
		if f.Integer {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return in, fmt.Errorf("%s: invalid integer %q", f.Key, raw)
			}
			in.NumOfJoists = n
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("%s: invalid number %q", f.Key, raw)
		}
		switch f.Key {
		case "pergola_len_m":
			in.PergolaLenM = v
		case "joist_width_cm":
			in.JoistWidthCM = v
		case "side_strip_len_cm":
			in.SideStripLenCM = v
		}
	}
	return in, nil
}
