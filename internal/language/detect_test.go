package language

import "testing"

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"two letter tag", "Show.S01E01.en.srt", "eng"},
		{"three letter tag", "Show.S01E01.eng.srt", "eng"},
		{"full word tag", "Show.S01E01.english.srt", "eng"},
		{"tag before forced marker", "Show.S01E01.eng.forced.srt", "eng"},
		{"tag before sdh marker", "Show.S01E01.spa.sdh.srt", "spa"},
		{"tag before hi marker", "Movie.2020.fre.hi.srt", "fra"},
		{"uppercase tag", "Show.S01E01.FR.srt", "fra"},
		{"no tag", "Show.S01E01.srt", ""},
		{"single part name", "subtitle.srt", ""},
		{"title word not scanned", "English.Teacher.S01E01.srt", ""},
		{"tag too deep", "Show.eng.Part.One.Two.srt", ""},
		{"unknown tag", "Show.S01E01.xx.srt", ""},
		{"release word ignored", "Show.S01E01.1080p.WEB.srt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFilename(tt.filename); got != tt.want {
				t.Errorf("FromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		configCode string
		want       string
	}{
		{"filename wins over config", "Show.S01E01.spa.srt", "en", "spa"},
		{"config fallback", "Show.S01E01.srt", "en", "eng"},
		{"config word fallback", "Show.S01E01.srt", "japanese", "jpn"},
		{"nothing recognized", "Show.S01E01.srt", "", ""},
		{"invalid config", "Show.S01E01.srt", "zz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.filename, tt.configCode); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.filename, tt.configCode, got, tt.want)
			}
		})
	}
}
