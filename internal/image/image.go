package image

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/manash/nanobanana/pkg/models"
)

const filenamePrefix = "nanobanana"

type Saver struct {
	now func() time.Time
}

func NewSaver() *Saver {
	return &Saver{now: time.Now}
}

// Save writes the image bytes to dir under a timestamped name and
// returns the path. An empty dir means the current working directory.
func (s *Saver) Save(img *models.GeneratedImage, dir string) (string, error) {
	if len(img.Data) == 0 {
		return "", models.ErrNoImageData
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	path := uniquePath(dir, GenerateFilenameWithTime(s.now()))
	if err := os.WriteFile(path, img.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	img.Filename = path
	return path, nil
}

// SaveAll writes every image in the response and returns the paths in
// order. It stops at the first failure.
func (s *Saver) SaveAll(resp *models.Response, dir string) ([]string, error) {
	paths := make([]string, 0, len(resp.Images))
	for i := range resp.Images {
		path, err := s.Save(&resp.Images[i], dir)
		if err != nil {
			return paths, fmt.Errorf("failed to save image %d: %w", i+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// uniquePath appends _2, _3, ... before the extension until the path
// does not exist, so two calls within the same second never clobber
// each other.
func uniquePath(dir, filename string) string {
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(filename)
	base := filename[:len(filename)-len(ext)]
	for i := 2; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

func GenerateFilename() string {
	return GenerateFilenameWithTime(time.Now())
}

func GenerateFilenameWithTime(t time.Time) string {
	return fmt.Sprintf("%s_%s.png", filenamePrefix, t.Format("20060102_150405"))
}
