package history

import (
	"time"

	"github.com/google/uuid"
)

// Generation is one recorded image-generation call.
type Generation struct {
	ID         string
	Request    string
	Pattern    string
	Prompt     string
	Model      string
	ImagePath  string
	Commentary string
	CreatedAt  time.Time
}

func NewGeneration(request, pattern, prompt, model, imagePath string) *Generation {
	return &Generation{
		ID:        uuid.New().String(),
		Request:   request,
		Pattern:   pattern,
		Prompt:    prompt,
		Model:     model,
		ImagePath: imagePath,
		CreatedAt: time.Now().UTC(),
	}
}

func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
