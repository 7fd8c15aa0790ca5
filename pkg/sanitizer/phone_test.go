package sanitizer

import "testing"

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"PH mobile without prefix", "09171234567", "+639171234567"},
		{"PH mobile with prefix", "+63 917 123 4567", "+639171234567"},
		{"US number", "+1 212-555-0142", "+12125550142"},
		{"garbage passes through trimmed", " not-a-phone ", "not-a-phone"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePhone(tt.input); got != tt.want {
				t.Errorf("SanitizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
