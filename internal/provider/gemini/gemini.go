package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/manash/nanobanana/internal/provider"
	"github.com/manash/nanobanana/pkg/models"
)

const defaultTimeout = 120 * time.Second

type Provider struct {
	client   *genai.Client
	registry *models.ModelRegistry
	logger   *slog.Logger
	timeout  time.Duration
}

func New(ctx context.Context, cfg *provider.Config, registry *models.ModelRegistry) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, provider.ErrAPIKeyRequired
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	timeout := defaultTimeout
	if cfg.TimeoutSec > 0 {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}

	return &Provider{
		client:   client,
		registry: registry,
		logger:   slog.Default(),
		timeout:  timeout,
	}, nil
}

func (p *Provider) Name() models.ProviderType {
	return models.ProviderGemini
}

func (p *Provider) SupportsModel(model string) bool {
	cap, ok := p.registry.Get(model)
	if !ok {
		return false
	}
	return cap.Provider == models.ProviderGemini
}

func (p *Provider) ListModels() []string {
	return p.registry.ListByProvider(models.ProviderGemini)
}

// Generate makes a single blocking call to the model. Remote failures
// are wrapped in ErrGenerationFailed with the API's message intact.
func (p *Provider) Generate(ctx context.Context, req *models.Request) (*models.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.logger.Debug("sending generation request",
		"model", req.Model, "prompt_len", len(req.Prompt))

	res, err := p.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrGenerationFailed, err)
	}

	resp, err := buildResponse(res)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("generation complete",
		"images", len(resp.Images), "commentary_len", len(resp.Commentary))
	return resp, nil
}

// buildResponse extracts inline image bytes and any text commentary
// from the candidates. The model returns images as InlineData parts.
func buildResponse(res *genai.GenerateContentResponse) (*models.Response, error) {
	if res == nil || len(res.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates returned", models.ErrNoImageData)
	}

	resp := &models.Response{}
	for _, cand := range res.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				resp.Images = append(resp.Images, models.GeneratedImage{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
					Index:    len(resp.Images),
				})
			} else if part.Text != "" {
				if resp.Commentary != "" {
					resp.Commentary += "\n"
				}
				resp.Commentary += part.Text
			}
		}
	}

	if len(resp.Images) == 0 {
		return nil, models.ErrNoImageData
	}
	return resp, nil
}
