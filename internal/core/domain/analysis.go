package domain

import "time"

// DetectedObject is a single object identified in an analyzed image.
type DetectedObject struct {
	Name       string  `json:"name" bson:"name"`
	Confidence float64 `json:"confidence" bson:"confidence"`
}

// ImageAnalysis is the structured result of the diagnostic vision call,
// persisted verbatim to a side collection for later inspection.
type ImageAnalysis struct {
	ID                string           `json:"id" bson:"_id,omitempty"`
	ImageURL          string           `json:"image_url" bson:"image_url"`
	Description       string           `json:"description" bson:"description"`
	Objects           []DetectedObject `json:"objects" bson:"objects"`
	Labels            []string         `json:"labels" bson:"labels"`
	OverallConfidence float64          `json:"overall_confidence" bson:"overall_confidence"`
	CreatedAt         time.Time        `json:"created_at" bson:"created_at"`
}
