package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

// maxAnalysisImageBytes caps the image download for the diagnostic call.
const maxAnalysisImageBytes = 10 << 20

const analyzePrompt = `Analyze this image for a civic issue reporting platform.
Identify objects, potential issues, and provide a description.
Return a JSON object with this exact schema:
{
  "description": "Short natural language description",
  "objects": [ { "name": "object name", "confidence": 0.0 to 1.0 } ],
  "labels": ["tag1", "tag2"],
  "overall_confidence": 0.0 to 1.0
}`

// Analyzer implements ports.ImageAnalyzer: download the image, ask Gemini for
// a structured description, persist the raw result to the analysis side log.
type Analyzer struct {
	client     *genai.Client
	model      string
	httpClient *http.Client
	analyses   ports.AnalysisRepository
	log        zerolog.Logger
}

// NewAnalyzer builds an Analyzer sharing the classifier's Gemini client.
func NewAnalyzer(classifier *Classifier, analyses ports.AnalysisRepository, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		client:     classifier.client,
		model:      classifier.model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		analyses:   analyses,
		log:        log,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, imageURL string) (*domain.ImageAnalysis, error) {
	img, err := a.download(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("analyze image: %w", err)
	}

	contents := []*genai.Content{genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(analyzePrompt),
		genai.NewPartFromBytes(img, "image/jpeg"),
	}, genai.RoleUser)}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("analyze image: %w", err)
	}

	var analysis domain.ImageAnalysis
	if err := json.Unmarshal([]byte(resp.Text()), &analysis); err != nil {
		return nil, fmt.Errorf("analyze image: malformed model response: %w", err)
	}
	analysis.ImageURL = imageURL
	analysis.CreatedAt = time.Now().UTC()

	if err := a.analyses.Create(ctx, &analysis); err != nil {
		// The caller still gets the result; the side log is diagnostic only.
		a.log.Warn().Err(err).Str("image_url", imageURL).Msg("failed to persist image analysis")
	}

	return &analysis, nil
}

func (a *Analyzer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxAnalysisImageBytes))
}
