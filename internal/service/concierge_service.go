package service

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/getaroom/rental-service/internal/config"
	"github.com/getaroom/rental-service/internal/domain"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

const fallbackWelcome = "Welcome to your new room! We hope you have a wonderful stay."

// TextGenerator abstracts the Gemini model call so the service can be
// exercised without network access.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) GenerateText(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// ConciergeService generates tenant-facing content with Gemini: a welcome
// message on move-in and grounded nearby-place suggestions. Without an API key
// welcome messages fall back to canned text and nearby lookups fail.
type ConciergeService struct {
	generator TextGenerator
}

// NewConciergeService connects to the Gemini API when a key is configured.
// With no key the service still constructs; only degraded behavior remains.
func NewConciergeService(ctx context.Context, cfg config.GenAIConfig) (*ConciergeService, error) {
	if cfg.APIKey == "" {
		return &ConciergeService{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &ConciergeService{generator: &genaiGenerator{client: client, model: cfg.Model}}, nil
}

// NewConciergeServiceWithGenerator wires a custom generator.
func NewConciergeServiceWithGenerator(generator TextGenerator) *ConciergeService {
	return &ConciergeService{generator: generator}
}

// WelcomeMessage produces a short personalized welcome for a tenant moving
// into a room. Generation failures degrade to the canned message rather than
// surfacing an error.
func (s *ConciergeService) WelcomeMessage(ctx context.Context, tenantName string, room *domain.Room) string {
	if s.generator == nil || room == nil {
		return fallbackWelcome
	}

	prompt := fmt.Sprintf(
		"Write a short, warm welcome message (2-3 sentences) for a tenant named %s "+
			"who has just moved into a room called %q located in %s. "+
			"Mention one of its amenities if any are listed: %s.",
		tenantName, room.Name, room.Location, strings.Join(room.Amenities, ", "))

	text, err := s.generator.GenerateText(ctx, prompt, nil)
	if err != nil || strings.TrimSpace(text) == "" {
		return fallbackWelcome
	}
	return strings.TrimSpace(text)
}

// NearbyPlaces asks the model for nearby points of interest, grounded with
// Google Maps at the given coordinates. Unlike welcome messages this has no
// useful fallback and fails when the integration is not configured.
func (s *ConciergeService) NearbyPlaces(ctx context.Context, room *domain.Room, latitude, longitude float64, interest string) (string, error) {
	if s.generator == nil {
		return "", apperrors.NewConflict("concierge integration is not configured", nil)
	}
	if room == nil {
		return "", apperrors.NewValidationError("room required", nil)
	}
	interest = strings.TrimSpace(interest)
	if interest == "" {
		interest = "restaurants, cafes and points of interest"
	}

	prompt := fmt.Sprintf(
		"List notable %s near the accommodation %q in %s. "+
			"Give a short bullet list with one line per place.",
		interest, room.Name, room.Location)

	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: genai.Ptr(latitude), Longitude: genai.Ptr(longitude)},
			},
		},
	}
	text, err := s.generator.GenerateText(ctx, prompt, cfg)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return strings.TrimSpace(text), nil
}
