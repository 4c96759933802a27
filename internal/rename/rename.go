package rename

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"subfast/internal/logging"
	"subfast/internal/matcher"
	"subfast/internal/media"
	"subfast/internal/services"
)

var (
	// problematicChars are characters some filesystems reject.
	problematicChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// subtitleWordPattern strips generic "sub"/"subtitle" markers from a
	// conflicting subtitle's own name before folding it into the unique
	// variant.
	subtitleWordPattern = regexp.MustCompile(`(?i)[._\-\s]*sub(title)?[._\-\s]*`)
)

// Action describes one executed rename.
type Action struct {
	Subtitle media.File
	Video    media.File
	OldName  string
	NewName  string
	NewPath  string
	// ConflictResolved is set when the plain target name was taken and
	// a unique variant was generated instead.
	ConflictResolved bool
	// Unchanged is set when the subtitle already carried the target
	// name and nothing was touched.
	Unchanged bool
}

// Renamer renames matched subtitles to align with their videos.
type Renamer struct {
	languageSuffix string
	logger         *slog.Logger
}

func New(languageSuffix string, logger *slog.Logger) *Renamer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Renamer{
		languageSuffix: strings.TrimSpace(languageSuffix),
		logger:         logging.NewComponentLogger(logger, "rename"),
	}
}

// Rename gives the pair's subtitle the video's stem, keeping the
// subtitle extension and appending the optional language suffix. When
// several subtitles target the same video name, later ones receive a
// unique variant built from their own cleaned name.
func (r *Renamer) Rename(pair matcher.Pair) (Action, error) {
	video := pair.Video
	subtitle := pair.Subtitle
	dir := filepath.Dir(subtitle.Path)
	ext := filepath.Ext(subtitle.Name)

	newName, newPath, conflict := r.target(dir, video.Stem(), ext, subtitle)
	action := Action{
		Subtitle:         subtitle,
		Video:            video,
		OldName:          subtitle.Name,
		NewName:          newName,
		NewPath:          newPath,
		ConflictResolved: conflict,
	}

	if newPath == subtitle.Path {
		action.Unchanged = true
		return action, nil
	}

	if err := os.Rename(subtitle.Path, newPath); err != nil {
		return action, services.Wrap(services.ErrFileSystem, "rename", "move", subtitle.Name, err)
	}

	if conflict {
		r.logger.Info("conflict resolved with unique name",
			logging.String("subtitle", subtitle.Name),
			logging.String("new_name", newName),
			logging.String("video", video.Name))
	} else {
		r.logger.Info("subtitle renamed",
			logging.String("subtitle", subtitle.Name),
			logging.String("new_name", newName))
	}
	return action, nil
}

// target picks the destination name. The plain form is
// <videoStem>[.<suffix>]<ext>; on collision the subtitle's own cleaned
// name is folded in, with numeric counters as a last resort.
func (r *Renamer) target(dir, videoStem, ext string, subtitle media.File) (string, string, bool) {
	plain := buildName(videoStem, ext, r.languageSuffix)
	plainPath := filepath.Join(dir, plain)
	if plainPath == subtitle.Path {
		return plain, plainPath, false
	}
	if _, err := os.Stat(plainPath); os.IsNotExist(err) {
		return plain, plainPath, false
	}

	cleaned := subtitleWordPattern.ReplaceAllString(subtitle.Stem(), "")
	if cleaned == "" {
		cleaned = subtitle.Stem()
	}
	suffixPart := ""
	if r.languageSuffix != "" {
		suffixPart = r.languageSuffix + "_"
	}
	specific := problematicChars.ReplaceAllString(videoStem+"."+suffixPart+cleaned, "_") + ext
	specificPath := filepath.Join(dir, specific)

	base := strings.TrimSuffix(specific, ext)
	for counter := 1; ; counter++ {
		if specificPath == subtitle.Path {
			return specific, specificPath, true
		}
		if _, err := os.Stat(specificPath); os.IsNotExist(err) {
			return specific, specificPath, true
		}
		specific = fmt.Sprintf("%s_%d%s", base, counter, ext)
		specificPath = filepath.Join(dir, specific)
	}
}

func buildName(videoStem, ext, suffix string) string {
	if suffix != "" {
		return videoStem + "." + suffix + ext
	}
	return videoStem + ext
}
