package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"github.com/abdulhadi/ustaad/internal/config"
	"github.com/abdulhadi/ustaad/internal/domain"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a TutorClient backed by the Gemini API or by
// Vertex AI, depending on the configured backend.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	var clientCfg *genai.ClientConfig

	switch cfg.Backend {
	case config.BackendVertex:
		if cfg.GCPProjectID == "" || cfg.GCPLocation == "" {
			return nil, fmt.Errorf("project and location must be set for the vertex backend")
		}
		clientCfg = &genai.ClientConfig{
			Project:  cfg.GCPProjectID,
			Location: cfg.GCPLocation,
			Backend:  genai.BackendVertexAI,
		}
	default:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("api key must be set for the gemini backend")
		}
		clientCfg = &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Reply implements domain.TutorClient.
func (g *GeminiClient) Reply(ctx context.Context, req domain.TurnRequest) (string, error) {
	contents, err := buildContents(req)
	if err != nil {
		return "", err
	}

	temp := float32(0.7)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(BuildSystemInstruction(req), genai.RoleUser),
		Temperature:       &temp,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return emptyReplyFallback, nil
	}
	return text, nil
}

// buildContents lays out prior turns followed by the live turn, the
// chat-continuation shape the API expects.
func buildContents(req domain.TurnRequest) ([]*genai.Content, error) {
	var contents []*genai.Content
	for _, h := range req.History {
		var role genai.Role = genai.RoleUser
		if h.Role == domain.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(h.Text, role))
	}

	if req.Image == nil {
		contents = append(contents, genai.NewContentFromText(promptText(req), genai.RoleUser))
		return contents, nil
	}

	raw, err := base64.StdEncoding.DecodeString(req.Image.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(raw, req.Image.MIMEType),
		genai.NewPartFromText(promptText(req)),
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	return contents, nil
}
