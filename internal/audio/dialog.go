package audio

import (
	"errors"

	"github.com/ncruces/zenity"
)

// ChooseFile shows a native file dialog. A cancelled dialog returns an
// empty path and no error.
func ChooseFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
