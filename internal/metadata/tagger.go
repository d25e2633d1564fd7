package metadata

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.senan.xyz/taglib"
)

// WriteTags writes the chosen track metadata to an audio file.
func WriteTags(path string, t Track) error {
	tags := make(map[string][]string)

	if t.Name != "" {
		tags[taglib.Title] = []string{t.Name}
	}
	if t.Artist != "" {
		tags[taglib.Artist] = []string{t.Artist}
		tags[taglib.AlbumArtist] = []string{t.Artist}
	}
	if t.Album != "" {
		tags[taglib.Album] = []string{t.Album}
	}
	if t.TrackNumber > 0 {
		tags[taglib.TrackNumber] = []string{strconv.Itoa(t.TrackNumber)}
	}
	if t.ReleaseDate != "" {
		tags[taglib.Date] = []string{t.ReleaseDate}
	}
	if t.Genre != "" {
		tags[taglib.Genre] = []string{t.Genre}
	}
	if t.Lyrics != "" {
		tags[taglib.Lyrics] = []string{t.Lyrics}
	}

	if err := taglib.WriteTags(path, tags, 0); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", path, err)
	}
	return nil
}

// WriteArtwork embeds artwork image data into an audio file.
func WriteArtwork(path string, imageData []byte) error {
	if len(imageData) == 0 {
		return nil
	}
	if err := taglib.WriteImage(path, imageData); err != nil {
		return fmt.Errorf("failed to write artwork to %s: %w", path, err)
	}
	return nil
}

// SubDirFromTags reads an audio file's tags and returns an "Artist/Album"
// subdirectory path for filing it into the library. Returns "" if tags
// can't be read.
func SubDirFromTags(path string) string {
	tags, err := taglib.ReadTags(path)
	if err != nil {
		return ""
	}

	artist := firstTag(tags, taglib.AlbumArtist)
	if artist == "" {
		artist = firstTag(tags, taglib.Artist)
		if i := strings.Index(artist, ","); i > 0 {
			artist = strings.TrimSpace(artist[:i])
		}
	}
	album := firstTag(tags, taglib.Album)

	if artist == "" {
		artist = "Unknown Artist"
	}
	if album == "" {
		album = "Unknown Album"
	}

	return filepath.Join(sanitizePath(artist), sanitizePath(album))
}

func firstTag(tags map[string][]string, key string) string {
	if vals, ok := tags[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// sanitizePath replaces characters that are problematic in file paths.
func sanitizePath(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(s)
}
