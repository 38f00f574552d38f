package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/villageconnect/grievance-system/internal/core/ports"
)

// AnalysisHandler exposes the on-demand image analysis used by moderators to
// inspect submitted photos.
type AnalysisHandler struct {
	analyzer ports.ImageAnalyzer
}

func NewAnalysisHandler(analyzer ports.ImageAnalyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer}
}

// Analyze handles POST /v1/analysis.
//
// @Summary      Analyze a grievance photo
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      analyzeImageRequest  true  "Image to analyze"
// @Success      200   {object}  domain.ImageAnalysis
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/analysis [post]
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	var req analyzeImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	analysis, err := h.analyzer.Analyze(c.Request().Context(), req.ImageURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analysis)
}
