package ports

import (
	"context"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

// PriorityClassifier asks the external reasoning service for a priority band.
// Implementations return an error for transport or validation failures; the
// submission pipeline is responsible for the timeout and the medium fallback.
type PriorityClassifier interface {
	Classify(ctx context.Context, title, description string, images [][]byte) (domain.Priority, error)
}

// ImageAnalyzer runs the diagnostic vision call against a stored image and
// persists the raw result to the analysis side log.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageURL string) (*domain.ImageAnalysis, error)
}
