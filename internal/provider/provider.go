package provider

import (
	"context"
	"errors"

	"github.com/manash/nanobanana/pkg/models"
)

var (
	ErrAPIKeyRequired   = errors.New("API key is required")
	ErrGenerationFailed = errors.New("image generation failed")
)

type Provider interface {
	Name() models.ProviderType
	Generate(ctx context.Context, req *models.Request) (*models.Response, error)
	SupportsModel(model string) bool
	ListModels() []string
}

type Config struct {
	APIKey     string
	BaseURL    string
	TimeoutSec int
	Verbose    bool
}
