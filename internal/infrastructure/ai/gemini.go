// Package ai adapts the Gemini API to the classifier and analyzer ports.
package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

const defaultModel = "gemini-1.5-flash"

// classifyPrompt embeds the four priority bands with example scenarios. The
// model is instructed to answer with exactly one lowercase label.
const classifyPrompt = `You are an AI assistant for a village grievance reporting system.
Your task is to analyze a grievance based on its title, description, and attached images (if any) and assign a priority level.

The available priority levels are:
- low: Minor cosmetic issues, non-urgent maintenance (e.g., peeling paint, overgrown grass in park).
- medium: Standard issues that need attention but aren't immediate hazards (e.g., street light out, garbage collection missed).
- high: Significant issues affecting quality of life or potential safety risks (e.g., large pothole, broken water pipe).
- urgent: Immediate threats to life, safety, or critical infrastructure (e.g., live wire exposed, major flooding, gas leak, fire).

Consider visual evidence from images if provided. For example, a "pothole" that looks like a small crack is low/medium, but a massive crater is high/urgent.

Analyze the following grievance:
Title: %q
Description: %q

Return ONLY the priority level as a single lowercase word: "low", "medium", "high", or "urgent". Do not include any other text or punctuation.`

// Config captures the Gemini connection settings.
type Config struct {
	APIKey string
	Model  string
}

// Classifier implements ports.PriorityClassifier against Gemini.
type Classifier struct {
	client *genai.Client
	model  string
}

// NewClassifier creates a Gemini-backed classifier.
func NewClassifier(ctx context.Context, cfg Config) (*Classifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Classifier{client: client, model: model}, nil
}

// Classify asks the model for one of the four priority labels. The response
// is trimmed and lower-cased; anything outside the four known labels is an
// error so the pipeline can apply its medium fallback.
func (c *Classifier) Classify(ctx context.Context, title, description string, images [][]byte) (domain.Priority, error) {
	parts := make([]*genai.Part, 0, 1+len(images))
	parts = append(parts, genai.NewPartFromText(fmt.Sprintf(classifyPrompt, title, description)))
	for _, img := range images {
		parts = append(parts, genai.NewPartFromBytes(img, "image/jpeg"))
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini classify: %w", err)
	}

	label := strings.ToLower(strings.TrimSpace(resp.Text()))
	priority := domain.Priority(label)
	if !priority.Valid() {
		return "", fmt.Errorf("gemini classify: unexpected label %q", label)
	}
	return priority, nil
}
