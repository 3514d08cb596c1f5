package models

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrEmptyPrompt  = errors.New("prompt cannot be empty")
	ErrUnknownModel = errors.New("unknown model")
	ErrNoImageData  = errors.New("no image data in response")
)

type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
)

// DefaultModel is the model used when none is specified.
const DefaultModel = "gemini-3-pro-image-preview"

type Request struct {
	Prompt string
	Model  string
}

func NewRequest(prompt string) *Request {
	return &Request{
		Prompt: prompt,
		Model:  DefaultModel,
	}
}

type Response struct {
	Images []GeneratedImage
	// Commentary holds any text the model returned alongside the image.
	Commentary string
}

type GeneratedImage struct {
	Data     []byte
	MIMEType string
	Index    int
	Filename string
}

type ModelCapabilities struct {
	Name        string
	Provider    ProviderType
	Aliases     []string
	Description string
}

func (c *ModelCapabilities) Validate(req *Request) error {
	if req.Prompt == "" {
		return ErrEmptyPrompt
	}
	return nil
}

func (c *ModelCapabilities) ApplyDefaults(req *Request) {
	if req.Model == "" {
		req.Model = c.Name
	}
}

type ModelRegistry struct {
	models  map[string]*ModelCapabilities
	aliases map[string]string
}

func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{
		models:  make(map[string]*ModelCapabilities),
		aliases: make(map[string]string),
	}
}

func (r *ModelRegistry) Register(cap *ModelCapabilities) {
	r.models[cap.Name] = cap
	for _, alias := range cap.Aliases {
		r.aliases[alias] = cap.Name
	}
}

// Resolve maps a model name or alias to its capabilities. The returned
// name is always the canonical model identifier.
func (r *ModelRegistry) Resolve(name string) (string, *ModelCapabilities, bool) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	cap, ok := r.models[name]
	if !ok {
		return "", nil, false
	}
	return cap.Name, cap, true
}

func (r *ModelRegistry) Get(name string) (*ModelCapabilities, bool) {
	_, cap, ok := r.Resolve(name)
	return cap, ok
}

func (r *ModelRegistry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *ModelRegistry) ListByProvider(provider ProviderType) []string {
	var names []string
	for name, cap := range r.models {
		if cap.Provider == provider {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func (r *ModelRegistry) Describe(name string) (string, error) {
	_, cap, ok := r.Resolve(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return cap.Description, nil
}

func DefaultRegistry() *ModelRegistry {
	r := NewModelRegistry()

	r.Register(&ModelCapabilities{
		Name:        "gemini-3-pro-image-preview",
		Provider:    ProviderGemini,
		Aliases:     []string{"nano-banana-pro"},
		Description: "Nano Banana Pro: highest quality, best text rendering",
	})

	r.Register(&ModelCapabilities{
		Name:        "gemini-2.5-flash-image",
		Provider:    ProviderGemini,
		Aliases:     []string{"nano-banana"},
		Description: "Nano Banana: fast, lower cost",
	})

	return r
}
