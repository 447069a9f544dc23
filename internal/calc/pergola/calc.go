package pergola

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	MinLengthM     = 0.0
	MaxLengthM     = 100.0
	MinJoists      = 2
	MaxJoists      = 100
	MinWidthCM     = 0.0
	MaxWidthCM     = 100.0
	MinSideStripCM = 0.0
	MaxSideStripCM = 100.0
)

var (
	ErrOutOfRange   = errors.New("value out of range")
	ErrTooFewJoists = errors.New("at least two joists required")
)

type Input struct {
	PergolaLenM    float64 `json:"pergola_len_m"`
	NumOfJoists    int     `json:"num_of_joists"`
	JoistWidthCM   float64 `json:"joist_width_cm"`
	SideStripLenCM float64 `json:"side_strip_len_cm"`
}

type Result struct {
	JoistAreaLenCM     float64 `json:"joist_area_len_cm"`
	TotalSpacingAreaCM float64 `json:"total_spacing_area_cm"`
	JoistSpacingCM     float64 `json:"joist_spacing_cm"`
	Display            string  `json:"display"`
	Notes              string  `json:"notes"`
}

// Defaults returns the snapshot shown before the user edits anything.
func Defaults() Input {
	return Input{
		PergolaLenM:    10.0,
		NumOfJoists:    10,
		JoistWidthCM:   13.5,
		SideStripLenCM: 2.0,
	}
}

// UnmarshalJSON starts from Defaults so omitted keys keep their default values.
func (in *Input) UnmarshalJSON(b []byte) error {
	type plain Input
	p := plain(Defaults())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*in = Input(p)
	return nil
}

func (in Input) Validate() error {
	if in.NumOfJoists < MinJoists {
		return fmt.Errorf("num_of_joists %d: %w", in.NumOfJoists, ErrTooFewJoists)
	}
	if in.NumOfJoists > MaxJoists {
		return fmt.Errorf("num_of_joists %d not in [%d, %d]: %w", in.NumOfJoists, MinJoists, MaxJoists, ErrOutOfRange)
	}
	if err := checkRange("pergola_len_m", in.PergolaLenM, MinLengthM, MaxLengthM); err != nil {
		return err
	}
	if err := checkRange("joist_width_cm", in.JoistWidthCM, MinWidthCM, MaxWidthCM); err != nil {
		return err
	}
	return checkRange("side_strip_len_cm", in.SideStripLenCM, MinSideStripCM, MaxSideStripCM)
}

// NaN fails both comparisons and is rejected here.
func checkRange(name string, v, min, max float64) error {
	if !(v >= min && v <= max) {
		return fmt.Errorf("%s %g not in [%g, %g]: %w", name, v, min, max, ErrOutOfRange)
	}
	return nil
}

// Spacing returns the gap in centimeters between adjacent joists. The result
// is not checked for plausibility and may be negative for layouts that do not
// fit.
func Spacing(pergolaLenM float64, numOfJoists int, joistWidthCM, sideStripLenCM float64) (float64, error) {
	_, _, gap, err := spacing(pergolaLenM, numOfJoists, joistWidthCM, sideStripLenCM)
	return gap, err
}

func spacing(lenM float64, joists int, widthCM, stripCM float64) (areaLen, totalSpacing, gap float64, err error) {
	if joists < MinJoists {
		return 0, 0, 0, ErrTooFewJoists
	}
	areaLen = 100*lenM - 2*stripCM
	totalSpacing = areaLen - widthCM*float64(joists)
	gap = totalSpacing / float64(joists-1)
	return areaLen, totalSpacing, gap, nil
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	areaLen, totalSpacing, gap, err := spacing(in.PergolaLenM, in.NumOfJoists, in.JoistWidthCM, in.SideStripLenCM)
	if err != nil {
		return Result{}, err
	}
	return Result{
		JoistAreaLenCM:     areaLen,
		TotalSpacingAreaCM: totalSpacing,
		JoistSpacingCM:     gap,
		Display:            FormatSpacing(gap),
		Notes:              "Even joist spacing after side strips and joist widths.",
	}, nil
}

func FormatSpacing(spacingCM float64) string {
	return fmt.Sprintf("Spacing %.2f", spacingCM)
}
