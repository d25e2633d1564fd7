package metadata

import (
	"reflect"
	"sort"
	"testing"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		hint    string
		want    []string
	}{
		{
			name:    "short query has no variants",
			primary: "Cradles",
			hint:    "Cradles",
			want:    []string{"Cradles"},
		},
		{
			name:    "three words still no variants",
			primary: "one two three",
			hint:    "one two three",
			want:    []string{"one two three"},
		},
		{
			name:    "four words gets prefixes and window",
			primary: "one two three four",
			hint:    "one two three four",
			want: []string{
				"one two three four",
				"one two three",
				"one two",
				"one",
				"three four",
			},
		},
		{
			name:    "six words adds the five word prefix",
			primary: "one two three four five six",
			hint:    "one two three four five six",
			want: []string{
				"one two three four five six",
				"one two three four five",
				"one two three",
				"one two",
				"one",
				"three four",
			},
		},
		{
			name:    "differing hint is expanded too",
			primary: "one two three four",
			hint:    "alpha beta gamma delta",
			want: []string{
				"one two three four",
				"one two three",
				"one two",
				"one",
				"three four",
				"alpha beta gamma",
				"alpha beta",
				"alpha",
				"gamma delta",
			},
		},
		{
			name:    "coinciding variants collapse",
			primary: "one one one one",
			hint:    "one one one one",
			want: []string{
				"one one one one",
				"one one one",
				"one one",
				"one",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.primary, tt.hint)

			sortedGot := append([]string(nil), got...)
			sortedWant := append([]string(nil), tt.want...)
			sort.Strings(sortedGot)
			sort.Strings(sortedWant)
			if !reflect.DeepEqual(sortedGot, sortedWant) {
				t.Errorf("Expand(%q, %q) = %v, want %v", tt.primary, tt.hint, got, tt.want)
			}
		})
	}
}

func TestExpandNoDuplicates(t *testing.T) {
	got := Expand("one two three four five six", "one two three four five six")
	seen := make(map[string]bool)
	for _, q := range got {
		if seen[q] {
			t.Errorf("duplicate variant %q in %v", q, got)
		}
		seen[q] = true
	}
}
