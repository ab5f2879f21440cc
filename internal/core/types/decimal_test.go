package types

import (
	"encoding/json"
	"testing"
)

func TestQuantity_ParseString(t *testing.T) {
	tests := []struct {
		in   string
		want Quantity
	}{
		{"0", 0},
		{"1", 10_000},
		{"2.5", 25_000},
		{"0.0001", 1},
		{"-3.25", -32_500},
		{"10.00005", 100_000}, // digits past the 4th decimal are dropped
	}

	for _, tt := range tests {
		got, err := parseQuantityString(tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parse %q\nwant: %d\ngot:  %d", tt.in, tt.want, got)
		}
	}
}

func TestQuantity_ParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3"} {
		if _, err := parseQuantityString(in); err == nil {
			t.Errorf("parse %q: expected error", in)
		}
	}
}

func TestQuantity_JSONNumberAndString(t *testing.T) {
	// Both number and string forms must decode to the same fixed point.
	var fromNumber, fromString Quantity
	if err := json.Unmarshal([]byte(`2.5`), &fromNumber); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`"2.5"`), &fromString); err != nil {
		t.Fatal(err)
	}
	if fromNumber != fromString || fromNumber != 25_000 {
		t.Errorf("decoded values diverge: number=%d string=%d", fromNumber, fromString)
	}

	out, err := json.Marshal(fromNumber)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "2.5000" {
		t.Errorf("marshal\nwant: 2.5000\ngot:  %s", out)
	}
}

func TestQuantity_String(t *testing.T) {
	if got := Quantity(-32_500).String(); got != "-3.2500" {
		t.Errorf("negative string: got %s", got)
	}
	if got := Quantity(1).String(); got != "0.0001" {
		t.Errorf("smallest unit string: got %s", got)
	}
}

func TestRoundMoney_HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.125", "1.13"},
		{"1.124", "1.12"},
		{"2.005", "2.01"},
		{"3.00", "3"},
	}

	for _, tt := range tests {
		got := RoundMoney(MustMoney(tt.in))
		if !got.Equal(MustMoney(tt.want)) {
			t.Errorf("round %s\nwant: %s\ngot:  %s", tt.in, tt.want, got)
		}
	}
}

func TestQuantity_DecimalRoundTrip(t *testing.T) {
	q := NewQuantityFromFloat64(12.3456)
	d := q.Decimal()
	if d.String() != "12.3456" {
		t.Errorf("decimal conversion: got %s", d)
	}
}
