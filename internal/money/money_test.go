package money

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCents int64
	}{
		{name: "exact two places", input: "45.50", wantCents: 4550},
		{name: "integer", input: "12", wantCents: 1200},
		{name: "residue rounds up", input: "10.001", wantCents: 1001},
		{name: "residue rounds up from tiny fraction", input: "10.0000001", wantCents: 1001},
		{name: "half cent rounds up", input: "0.005", wantCents: 1},
		{name: "negative rounds away from zero", input: "-10.001", wantCents: -1001},
		{name: "zero", input: "0", wantCents: 0},
		{name: "one place", input: "3.4", wantCents: 340},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromString(tt.input)
			if err != nil {
				t.Fatalf("FromString(%q) returned error: %v", tt.input, err)
			}
			if got.Cents() != tt.wantCents {
				t.Errorf("FromString(%q) = %d cents, want %d", tt.input, got.Cents(), tt.wantCents)
			}
		})
	}
}

func TestFromStringInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "12.3.4", "$5"} {
		if _, err := FromString(input); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("FromString(%q) error = %v, want ErrInvalidAmount", input, err)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 4550, want: "45.50"},
		{cents: 600, want: "6.00"},
		{cents: 5, want: "0.05"},
		{cents: -1001, want: "-10.01"},
		{cents: 0, want: "0.00"},
	}

	for _, tt := range tests {
		if got := FromCents(tt.cents).String(); got != tt.want {
			t.Errorf("FromCents(%d).String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(FromCents(1001))
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(out) != "10.01" {
		t.Errorf("Marshal = %s, want 10.01", out)
	}

	var m Money
	if err := json.Unmarshal([]byte("10.001"), &m); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if m.Cents() != 1001 {
		t.Errorf("Unmarshal(10.001) = %d cents, want 1001 (quantized up)", m.Cents())
	}

	if err := json.Unmarshal([]byte(`"6.00"`), &m); err != nil {
		t.Fatalf("Unmarshal of numeric string returned error: %v", err)
	}
	if m.Cents() != 600 {
		t.Errorf("Unmarshal(\"6.00\") = %d cents, want 600", m.Cents())
	}
}

func TestScan(t *testing.T) {
	var m Money
	if err := m.Scan([]byte("45.50")); err != nil {
		t.Fatalf("Scan([]byte) returned error: %v", err)
	}
	if m.Cents() != 4550 {
		t.Errorf("Scan([]byte \"45.50\") = %d cents, want 4550", m.Cents())
	}

	if err := m.Scan("12.00"); err != nil {
		t.Fatalf("Scan(string) returned error: %v", err)
	}
	if m.Cents() != 1200 {
		t.Errorf("Scan(\"12.00\") = %d cents, want 1200", m.Cents())
	}

	if err := m.Scan(struct{}{}); err == nil {
		t.Error("Scan(struct{}{}) should fail")
	}
}

func TestValue(t *testing.T) {
	v, err := FromCents(4550).Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if v != "45.50" {
		t.Errorf("Value = %v, want \"45.50\"", v)
	}
}
