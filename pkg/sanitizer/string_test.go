package sanitizer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims ends", "  Toyota Vios  ", "Toyota Vios"},
		{"collapses internal runs", "Toyota   Vios\t2024", "Toyota Vios 2024"},
		{"empty stays empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
		{"already clean", "Honda Click", "Honda Click"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Ana.Reyes@Example.COM ", "ana.reyes@example.com"},
		{"", ""},
		{"plain@host.ph", "plain@host.ph"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizePlate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase with space", "ab 1234", "AB-1234"},
		{"already normalized", "NCR-4821", "NCR-4821"},
		{"strips punctuation", "ab*12!34", "AB1234"},
		{"collapses hyphens", "ab--12---34", "AB-12-34"},
		{"trims edge hyphens", " -ab 1234- ", "AB-1234"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePlate(tt.input); got != tt.want {
				t.Errorf("SanitizePlate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Airport Pickup", "airport_pickup"},
		{"  VIP  ", "vip"},
		{"long__term", "long_term"},
		{"##", ""},
	}

	for _, tt := range tests {
		if got := SanitizeTag(tt.input); got != tt.want {
			t.Errorf("SanitizeTag(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
