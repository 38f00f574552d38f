package ports

import (
	"context"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

// AnalysisRepository persists diagnostic image analysis results.
type AnalysisRepository interface {
	Create(ctx context.Context, a *domain.ImageAnalysis) error
}
