package eq

import (
	"errors"
	"testing"
)

func TestSlopeTable(t *testing.T) {
	tests := []struct {
		slope  Slope
		stages int
		order  int
		dbOct  int
		text   string
	}{
		{Slope12, 1, 2, 12, "12 dB/oct"},
		{Slope24, 2, 4, 24, "24 dB/oct"},
		{Slope36, 3, 6, 36, "36 dB/oct"},
		{Slope48, 4, 8, 48, "48 dB/oct"},
	}

	for _, tt := range tests {
		if !tt.slope.Valid() {
			t.Errorf("%v: Valid() = false", tt.slope)
		}

		if got := tt.slope.StageCount(); got != tt.stages {
			t.Errorf("%v: StageCount = %d, want %d", tt.slope, got, tt.stages)
		}

		if got := tt.slope.Order(); got != tt.order {
			t.Errorf("%v: Order = %d, want %d", tt.slope, got, tt.order)
		}

		if got := tt.slope.DBPerOctave(); got != tt.dbOct {
			t.Errorf("%v: DBPerOctave = %d, want %d", tt.slope, got, tt.dbOct)
		}

		if got := tt.slope.String(); got != tt.text {
			t.Errorf("String = %q, want %q", got, tt.text)
		}
	}
}

func TestSlopeOutOfRangeClamps(t *testing.T) {
	if Slope(-1).Valid() || Slope(4).Valid() {
		t.Fatal("out-of-range slopes reported valid")
	}

	if got := Slope(-3).StageCount(); got != 1 {
		t.Fatalf("Slope(-3).StageCount = %d, want 1", got)
	}

	if got := Slope(9).StageCount(); got != 4 {
		t.Fatalf("Slope(9).StageCount = %d, want 4", got)
	}

	if got := Slope(7).String(); got != "Slope(7)" {
		t.Fatalf("String = %q", got)
	}
}

func TestParseSlope(t *testing.T) {
	tests := []struct {
		in   string
		want Slope
	}{
		{"12", Slope12},
		{"24 dB/oct", Slope24},
		{"36dB/oct", Slope36},
		{"48 db/Oct", Slope48},
		{"  24 DB/OCT ", Slope24},
	}

	for _, tt := range tests {
		got, err := ParseSlope(tt.in)
		if err != nil {
			t.Errorf("ParseSlope(%q): %v", tt.in, err)
			continue
		}

		if got != tt.want {
			t.Errorf("ParseSlope(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "6", "18 dB/oct", "96", "steep"} {
		if _, err := ParseSlope(in); !errors.Is(err, ErrInvalidSlope) {
			t.Errorf("ParseSlope(%q): err=%v, want ErrInvalidSlope", in, err)
		}
	}
}

func TestParseSlopeAcceptsChoiceLabels(t *testing.T) {
	for i, label := range slopeChoices {
		got, err := ParseSlope(label)
		if err != nil {
			t.Fatalf("ParseSlope(%q): %v", label, err)
		}

		if int(got) != i {
			t.Fatalf("ParseSlope(%q) = %d, want %d", label, got, i)
		}
	}
}
