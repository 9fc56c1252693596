package naming

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		client    string
		start     time.Time
		end       time.Time
		extension string
	}{
		{
			name:      "typical csv delivery",
			raw:       "Acme.010125.051225.csv",
			client:    "Acme",
			start:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC),
			extension: "csv",
		},
		{
			name:      "single day range",
			raw:       "Globex.150625.150625.xml",
			client:    "Globex",
			start:     time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			extension: "xml",
		},
		{
			name:      "json extension",
			raw:       "initech.280226.010326.json",
			client:    "initech",
			start:     time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			extension: "json",
		},
		{
			name:      "leap day in a leap year",
			raw:       "Acme.290224.290224.csv",
			client:    "Acme",
			start:     time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			extension: "csv",
		},
		{
			name:      "mixed case client",
			raw:       "McDuck.311299.010100.xml",
			client:    "McDuck",
			start:     time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
			extension: "xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.raw, err)
			}
			if fn.Client != tt.client {
				t.Errorf("Client = %q, want %q", fn.Client, tt.client)
			}
			if !fn.RangeStart.Equal(tt.start) {
				t.Errorf("RangeStart = %v, want %v", fn.RangeStart, tt.start)
			}
			if !fn.RangeEnd.Equal(tt.end) {
				t.Errorf("RangeEnd = %v, want %v", fn.RangeEnd, tt.end)
			}
			if fn.Extension != tt.extension {
				t.Errorf("Extension = %q, want %q", fn.Extension, tt.extension)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty name", ""},
		{"missing segments", "Acme.010125.csv"},
		{"extra segment", "Acme.010125.051225.csv.bak"},
		{"no extension", "Acme.010125.051225"},
		{"unknown extension", "Acme.010125.051225.txt"},
		{"upper case extension", "Acme.010125.051225.CSV"},
		{"mixed case extension", "Acme.010125.051225.Json"},
		{"digit in client", "acme7.010125.051225.csv"},
		{"empty client", ".010125.051225.csv"},
		{"underscore in client", "ac_me.010125.051225.csv"},
		{"five digit date", "Acme.01012.051225.csv"},
		{"seven digit date", "Acme.0101251.051225.csv"},
		{"day thirty two", "Acme.320125.051225.csv"},
		{"day zero", "Acme.000125.051225.csv"},
		{"month thirteen", "Acme.011325.051225.csv"},
		{"february thirtieth", "Acme.300225.051225.csv"},
		{"leap day in a non leap year", "Acme.290223.010323.csv"},
		{"end before start", "Acme.051225.010125.csv"},
		{"forward slash", "deliveries/Acme.010125.051225.csv"},
		{"backslash", `deliveries\Acme.010125.051225.csv`},
		{"spaces", "Acme .010125.051225.csv"},
		{"trailing newline", "Acme.010125.051225.csv\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatalf("Parse(%q) should have failed", tt.raw)
			}
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidName", tt.raw, err)
			}
		})
	}
}

func TestParseCenturyPivot(t *testing.T) {
	// Two-digit years 69-99 resolve to the twentieth century, 00-68 to the
	// twenty-first.
	fn, err := Parse("Acme.010169.020169.csv")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := fn.RangeStart.Year(); got != 1969 {
		t.Errorf("year for token 69 = %d, want 1969", got)
	}

	fn, err = Parse("Acme.010168.020168.csv")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := fn.RangeStart.Year(); got != 2068 {
		t.Errorf("year for token 68 = %d, want 2068", got)
	}
}

func TestParseErrorDetail(t *testing.T) {
	_, err := Parse("Acme.051225.010125.csv")
	if err == nil {
		t.Fatal("expected an error for an inverted range")
	}
	if !strings.Contains(err.Error(), "precedes") {
		t.Errorf("inverted range error should say which token precedes which, got: %v", err)
	}
}

func TestStartToken(t *testing.T) {
	fn, err := Parse("Acme.010125.051225.csv")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := fn.StartToken(); got != "010125" {
		t.Errorf("StartToken() = %q, want %q", got, "010125")
	}
	if got := fn.EndToken(); got != "051225" {
		t.Errorf("EndToken() = %q, want %q", got, "051225")
	}
}

func TestFileNameString(t *testing.T) {
	raw := "Umbrella.050390.080390.json"
	fn, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := fn.String(); got != raw {
		t.Errorf("String() = %q, want %q", got, raw)
	}
}
