package pergola_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pergulator/internal/calc/pergola"
)

func TestCalculate_Scenarios(t *testing.T) {
	cases := []struct {
		name    string
		in      pergola.Input
		areaLen float64
		total   float64
		spacing float64
		display string
	}{
		{"Defaults", pergola.Defaults(), 996, 861, 861.0 / 9, "Spacing 95.67"},
		{"ShortNoStrip", pergola.Input{PergolaLenM: 5.0, NumOfJoists: 3, JoistWidthCM: 10.0, SideStripLenCM: 0}, 500, 470, 235, "Spacing 235.00"},
		{"TwoJoists", pergola.Input{PergolaLenM: 3.0, NumOfJoists: 2, JoistWidthCM: 10.0, SideStripLenCM: 5}, 290, 270, 270, "Spacing 270.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := pergola.Calculate(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.areaLen, res.JoistAreaLenCM, 1e-9)
			assert.InDelta(t, tc.total, res.TotalSpacingAreaCM, 1e-9)
			assert.InDelta(t, tc.spacing, res.JoistSpacingCM, 1e-9)
			assert.Equal(t, tc.display, res.Display)
		})
	}
}

// TestCalculate_TwoJoistsEqualsTotal checks the denominator-one boundary.
func TestCalculate_TwoJoistsEqualsTotal(t *testing.T) {
	for _, lenM := range []float64{0.5, 2, 7.25, 100} {
		res, err := pergola.Calculate(pergola.Input{PergolaLenM: lenM, NumOfJoists: 2, JoistWidthCM: 12, SideStripLenCM: 1.5})
		require.NoError(t, err)
		assert.Equal(t, res.TotalSpacingAreaCM, res.JoistSpacingCM, "length %g", lenM)
	}
}

func TestCalculate_InfeasibleLayoutReportedAsIs(t *testing.T) {
	res, err := pergola.Calculate(pergola.Input{PergolaLenM: 1, NumOfJoists: 11, JoistWidthCM: 20, SideStripLenCM: 0})
	require.NoError(t, err)
	// 100 - 220 = -120 over 10 gaps.
	assert.InDelta(t, -12.0, res.JoistSpacingCM, 1e-9)
	assert.Equal(t, "Spacing -12.00", res.Display)
}

func TestSpacing_MatchesFormula(t *testing.T) {
	for joists := 2; joists <= 100; joists += 7 {
		for _, lenM := range []float64{0, 1.3, 10, 55.5, 100} {
			got, err := pergola.Spacing(lenM, joists, 13.5, 2.0)
			require.NoError(t, err)
			want := ((100*lenM - 2*2.0) - 13.5*float64(joists)) / float64(joists-1)
			assert.InDelta(t, want, got, 1e-9, "joists=%d len=%g", joists, lenM)
		}
	}
}

func TestSpacing_GuardsDenominator(t *testing.T) {
	for _, joists := range []int{1, 0, -3} {
		got, err := pergola.Spacing(10, joists, 13.5, 2)
		require.ErrorIs(t, err, pergola.ErrTooFewJoists)
		assert.False(t, math.IsInf(got, 0))
		assert.Zero(t, got)
	}
}

func TestValidate(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name string
		mod  func(*pergola.Input)
		err  error
	}{
		{"Defaults", func(*pergola.Input) {}, nil},
		{"OneJoist", func(in *pergola.Input) { in.NumOfJoists = 1 }, pergola.ErrTooFewJoists},
		{"TooManyJoists", func(in *pergola.Input) { in.NumOfJoists = 101 }, pergola.ErrOutOfRange},
		{"MaxJoists", func(in *pergola.Input) { in.NumOfJoists = 100 }, nil},
		{"NegativeLength", func(in *pergola.Input) { in.PergolaLenM = -0.1 }, pergola.ErrOutOfRange},
		{"ZeroLength", func(in *pergola.Input) { in.PergolaLenM = 0 }, nil},
		{"LongLength", func(in *pergola.Input) { in.PergolaLenM = 100.01 }, pergola.ErrOutOfRange},
		{"NaNWidth", func(in *pergola.Input) { in.JoistWidthCM = nan }, pergola.ErrOutOfRange},
		{"WideJoist", func(in *pergola.Input) { in.JoistWidthCM = 101 }, pergola.ErrOutOfRange},
		{"MaxStrip", func(in *pergola.Input) { in.SideStripLenCM = 100 }, nil},
		{"NegativeStrip", func(in *pergola.Input) { in.SideStripLenCM = -1 }, pergola.ErrOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := pergola.Defaults()
			tc.mod(&in)
			err := in.Validate()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			if !errors.Is(err, tc.err) {
				t.Errorf("Validate(%+v) error = %v; want %v", in, err, tc.err)
			}
		})
	}
}

func TestCalculate_RejectsInvalid(t *testing.T) {
	in := pergola.Defaults()
	in.NumOfJoists = 1
	_, err := pergola.Calculate(in)
	require.ErrorIs(t, err, pergola.ErrTooFewJoists)
	assert.Contains(t, err.Error(), "num_of_joists 1")
}

func TestFormatSpacing_TwoDecimals(t *testing.T) {
	cases := map[float64]string{
		95.666666: "Spacing 95.67",
		235:       "Spacing 235.00",
		0.006:     "Spacing 0.01",
		1.1:       "Spacing 1.10",
		-3.14159:  "Spacing -3.14",
	}
	for v, want := range cases {
		assert.Equal(t, want, pergola.FormatSpacing(v))
	}
}
