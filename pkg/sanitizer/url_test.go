package sanitizer

import "testing"

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "adds https and drops www",
			input: "www.Example.com/fleet/vios.jpg",
			want:  "https://example.com/fleet/vios.jpg",
		},
		{
			name:  "strips utm params",
			input: "https://cdn.example.com/img.png?utm_source=ads&size=lg",
			want:  "https://cdn.example.com/img.png?size=lg",
		},
		{
			name:  "drops trailing slash",
			input: "https://example.com/fleet/",
			want:  "https://example.com/fleet",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "hostless input rejected",
			input: "https://",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeURL(tt.input); got != tt.want {
				t.Errorf("SanitizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
