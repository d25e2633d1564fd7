package metadata

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "plain words",
			in:   "Blinding Lights",
			want: []string{"blinding", "lights"},
		},
		{
			name: "diacritics transliterated",
			in:   "Beyoncé Déjà Vu",
			want: []string{"beyonce", "deja", "vu"},
		},
		{
			name: "stopwords removed",
			in:   "The Sound of Silence ft Disturbed",
			want: []string{"sound", "of", "silence", "disturbed"},
		},
		{
			name: "punctuation stripped",
			in:   "Don't Stop Me Now!",
			want: []string{"dont", "stop", "me", "now"},
		},
		{
			name: "whitespace collapsed",
			in:   "  Tera   Buzz  ",
			want: []string{"tera", "buzz"},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
		{
			name: "punctuation only",
			in:   "...",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"blinding lights",
		"tera buzz",
		"cradles",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(joinTokens(once))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Normalize not idempotent for %q: %v vs %v", in, once, twice)
		}
	}
}

func joinTokens(tokens []string) string {
	out := ""
	for i, tok := range tokens {
		if i > 0 {
			out += " "
		}
		out += tok
	}
	return out
}

func TestCleanField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cradles (feat. Someone)", "Cradles "},
		{"Rock & Roll", "Rock and Roll"},
		{"Title (Remastered) (Live)", "Title  "},
		{"No extras", "No extras"},
	}

	for _, tt := range tests {
		if got := CleanField(tt.in); got != tt.want {
			t.Errorf("CleanField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanVideoTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "official video",
			title: "Blinding Lights (Official Video)",
			want:  "Blinding Lights",
		},
		{
			name:  "official music video brackets",
			title: "Blinding Lights [Official Music Video]",
			want:  "Blinding Lights",
		},
		{
			name:  "lyrics suffix",
			title: "Blinding Lights (Lyrics)",
			want:  "Blinding Lights",
		},
		{
			name:  "featuring credit",
			title: "HUMBLE. (feat. Jay Rock)",
			want:  "HUMBLE.",
		},
		{
			name:  "hd marker",
			title: "Blinding Lights [HD]",
			want:  "Blinding Lights",
		},
		{
			name:  "clean title untouched",
			title: "Blinding Lights",
			want:  "Blinding Lights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanVideoTitle(tt.title); got != tt.want {
				t.Errorf("CleanVideoTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
