package metadata

import "testing"

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: 0,
		},
		{
			name: "identical sets",
			a:    []string{"tera", "buzz"},
			b:    []string{"tera", "buzz"},
			want: 1,
		},
		{
			name: "disjoint sets",
			a:    []string{"cradles"},
			b:    []string{"shape", "you"},
			want: 0,
		},
		{
			name: "partial overlap",
			a:    []string{"blinding", "lights"},
			b:    []string{"blinding", "lights", "remix"},
			want: 2.0 / 3.0,
		},
		{
			name: "duplicates collapse",
			a:    []string{"buzz", "buzz"},
			b:    []string{"buzz"},
			want: 1,
		},
		{
			name: "one side empty",
			a:    []string{"cradles"},
			b:    nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); got != tt.want {
				t.Errorf("Jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
