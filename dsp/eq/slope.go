package eq

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSlope reports a slope outside the 12/24/36/48 dB/oct set.
var ErrInvalidSlope = errors.New("eq: slope must be 12, 24, 36 or 48 dB/oct")

// Slope is the steepness of a cut filter.
type Slope int

const (
	Slope12 Slope = iota
	Slope24
	Slope36
	Slope48

	numSlopes = iota
)

// stageCounts maps a slope to the number of active biquad sections. The
// table is fixed rather than derived from the enum value.
var stageCounts = [numSlopes]int{1, 2, 3, 4}

// slopeChoices are the choice labels exposed by the parameter store.
var slopeChoices = []string{"12 db/Oct", "24 db/Oct", "36 db/Oct", "48 db/Oct"}

// Valid reports whether s is one of the four defined slopes.
func (s Slope) Valid() bool {
	return s >= Slope12 && s <= Slope48
}

// StageCount returns how many biquad sections realize s. Invalid values
// are clamped to the nearest defined slope.
func (s Slope) StageCount() int {
	switch {
	case s < Slope12:
		s = Slope12
	case s > Slope48:
		s = Slope48
	}

	return stageCounts[s]
}

// Order returns the Butterworth filter order, twice the stage count.
func (s Slope) Order() int {
	return 2 * s.StageCount()
}

// DBPerOctave returns the asymptotic rolloff.
func (s Slope) DBPerOctave() int {
	return 12 * s.StageCount()
}

func (s Slope) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slope(%d)", int(s))
	}

	return fmt.Sprintf("%d dB/oct", s.DBPerOctave())
}

// ParseSlope accepts "24", "24 dB/oct", "24dB/oct" and the parameter
// store's "24 db/Oct" label, case-insensitively.
func ParseSlope(text string) (Slope, error) {
	t := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(text), " ", ""))
	t = strings.TrimSuffix(t, "db/oct")

	switch t {
	case "12":
		return Slope12, nil
	case "24":
		return Slope24, nil
	case "36":
		return Slope36, nil
	case "48":
		return Slope48, nil
	}

	return Slope12, fmt.Errorf("%w: %q", ErrInvalidSlope, text)
}
