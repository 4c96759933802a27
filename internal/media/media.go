package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind distinguishes the two media roles subfast cares about.
type Kind int

const (
	KindVideo Kind = iota
	KindSubtitle
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindSubtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// File describes a single scanned media file. Immutable once scanned; the
// matching and transaction layers consume it read-only.
type File struct {
	Path      string
	Name      string
	Extension string // lowercase, without dot
	Kind      Kind
	SizeBytes int64
}

// Stem returns the filename without its extension.
func (f File) Stem() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Scan lists dir once and splits regular files into video and subtitle sets
// by extension. Both slices come back deduplicated and sorted
// lexicographically by filename so downstream matching is reproducible.
func Scan(dir string, videoExts, subtitleExts []string) (videos, subtitles []File, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	videoSet := extensionSet(videoExts)
	subtitleSet := extensionSet(subtitleExts)
	seen := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		var kind Kind
		switch {
		case contains(videoSet, ext):
			kind = KindVideo
		case contains(subtitleSet, ext):
			kind = KindSubtitle
		default:
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, nil, fmt.Errorf("stat %s: %w", name, err)
		}

		file := File{
			Path:      filepath.Join(dir, name),
			Name:      name,
			Extension: ext,
			Kind:      kind,
			SizeBytes: info.Size(),
		}
		if kind == KindVideo {
			videos = append(videos, file)
		} else {
			subtitles = append(subtitles, file)
		}
	}

	sort.Slice(videos, func(i, j int) bool { return videos[i].Name < videos[j].Name })
	sort.Slice(subtitles, func(i, j int) bool { return subtitles[i].Name < subtitles[j].Name })
	return videos, subtitles, nil
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}

func contains(set map[string]struct{}, ext string) bool {
	_, ok := set[ext]
	return ok
}
