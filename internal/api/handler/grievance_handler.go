package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

// GrievanceHandler exposes the submission pipeline, the transition engine,
// comments, and the read-side views.
type GrievanceHandler struct {
	submissions ports.SubmissionService
	grievances  ports.GrievanceService
}

func NewGrievanceHandler(submissions ports.SubmissionService, grievances ports.GrievanceService) *GrievanceHandler {
	return &GrievanceHandler{submissions: submissions, grievances: grievances}
}

// Submit handles POST /v1/grievances (multipart/form-data).
//
// @Summary      Submit a new grievance
// @Tags         grievances
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title          formData  string  true   "Short title"
// @Param        description    formData  string  true   "Full description"
// @Param        departments    formData  []string  true  "Target departments (repeatable)"
// @Param        location       formData  string  false  "Free-form location"
// @Param        contact_phone  formData  string  false  "Contact phone"
// @Param        images         formData  file    false  "Up to 5 photos"
// @Success      201  {object}  submitGrievanceResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/grievances [post]
func (h *GrievanceHandler) Submit(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var form submitGrievanceForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	images, err := readImageParts(c)
	if err != nil {
		return err
	}

	result, err := h.submissions.Submit(c.Request().Context(), actor, ports.SubmitGrievanceInput{
		Title:        form.Title,
		Description:  form.Description,
		Departments:  form.Departments,
		Location:     form.Location,
		ContactPhone: form.ContactPhone,
		Images:       images,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, submitGrievanceResponse{
		ID:        result.ID,
		Status:    result.Status,
		Priority:  result.Priority,
		ImageURLs: result.ImageURLs,
		CreatedAt: result.CreatedAt,
	})
}

// readImageParts pulls the "images" file parts out of the multipart form.
// The count limit is checked before reading any bytes.
func readImageParts(c echo.Context) ([]ports.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all: a grievance without photos is fine.
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > domain.MaxImages {
		return nil, domain.ErrTooManyImages
	}

	images := make([]ports.ImageUpload, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
		}
		images = append(images, ports.ImageUpload{Name: fh.Filename, Data: data})
	}
	return images, nil
}

// Get handles GET /v1/grievances/:id.
//
// @Summary      Get a grievance by ID
// @Tags         grievances
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Grievance ID"
// @Success      200  {object}  domain.Grievance
// @Failure      404  {object}  errorResponse
// @Router       /v1/grievances/{id} [get]
func (h *GrievanceHandler) Get(c echo.Context) error {
	g, err := h.grievances.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

// Update handles PATCH /v1/grievances/:id — status and/or priority changes.
//
// @Summary      Update grievance status or priority
// @Tags         grievances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Grievance ID"
// @Param        body  body      updateGrievanceRequest  true  "Fields to change"
// @Success      200   {object}  domain.Grievance
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/grievances/{id} [patch]
func (h *GrievanceHandler) Update(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req updateGrievanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateGrievanceInput{GrievanceID: c.Param("id")}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		input.Status = &s
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		input.Priority = &p
	}

	g, err := h.grievances.Update(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

// AddComment handles POST /v1/grievances/:id/comments.
//
// @Summary      Add a comment to a grievance
// @Tags         grievances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Grievance ID"
// @Param        body  body      addCommentRequest  true  "Comment text"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/grievances/{id}/comments [post]
func (h *GrievanceHandler) AddComment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.grievances.AddComment(c.Request().Context(), actor, ports.AddCommentInput{
		GrievanceID: c.Param("id"),
		Text:        req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// Comments handles GET /v1/grievances/:id/comments.
//
// @Summary      List comments on a grievance, oldest first
// @Tags         grievances
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Grievance ID"
// @Success      200  {array}   domain.Comment
// @Router       /v1/grievances/{id}/comments [get]
func (h *GrievanceHandler) Comments(c echo.Context) error {
	comments, err := h.grievances.Comments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Feed handles GET /v1/grievances/feed — the cross-department community feed.
//
// @Summary      Community feed of recent grievances
// @Tags         grievances
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max results (default 100, cap 200)"
// @Success      200    {array}   domain.Grievance
// @Router       /v1/grievances/feed [get]
func (h *GrievanceHandler) Feed(c echo.Context) error {
	feed, err := h.grievances.CommunityFeed(c.Request().Context(), queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feed)
}

// Department handles GET /v1/grievances/department — grievances targeting a
// department. Officials see their own department; admins may pass any.
//
// @Summary      Department work queue
// @Tags         grievances
// @Produce      json
// @Security     BearerAuth
// @Param        department  query     string  false  "Department name (admins only)"
// @Param        limit       query     int     false  "Max results"
// @Success      200         {array}   domain.Grievance
// @Failure      403         {object}  errorResponse
// @Router       /v1/grievances/department [get]
func (h *GrievanceHandler) Department(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	list, err := h.grievances.DepartmentView(c.Request().Context(), actor, c.QueryParam("department"), queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Mine handles GET /v1/grievances/mine — the caller's own submissions.
//
// @Summary      List the caller's grievances
// @Tags         grievances
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Max results"
// @Success      200    {array}  domain.Grievance
// @Router       /v1/grievances/mine [get]
func (h *GrievanceHandler) Mine(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	list, err := h.grievances.MyGrievances(c.Request().Context(), actor, queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Summary handles GET /v1/grievances/summary — the admin aggregate view.
//
// @Summary      Aggregate counts by status, priority, and department
// @Tags         grievances
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/grievances/summary [get]
func (h *GrievanceHandler) Summary(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	counts, err := h.grievances.Summary(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{
		Total:        counts.Total,
		ByStatus:     counts.ByStatus,
		ByPriority:   counts.ByPriority,
		ByDepartment: counts.ByDepartment,
	})
}

// queryLimit parses the optional ?limit= parameter; 0 means service default.
func queryLimit(c echo.Context) int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
