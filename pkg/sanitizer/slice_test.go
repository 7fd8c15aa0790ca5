package sanitizer

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "dedupes after normalization",
			input: []string{"VIP", "vip", " Vip "},
			want:  []string{"vip"},
		},
		{
			name:  "drops empties",
			input: []string{"airport pickup", "", "##", "long term"},
			want:  []string{"airport_pickup", "long_term"},
		},
		{
			name:  "preserves first-seen order",
			input: []string{"b tag", "a tag", "b tag"},
			want:  []string{"b_tag", "a_tag"},
		},
		{
			name:  "nil input yields empty slice",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTags(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
