package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=citizen department admin"`
	Department  string `json:"department,omitempty" validate:"omitempty,department"`
	Phone       string `json:"phone,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Grievances ---

// submitGrievanceForm mirrors the multipart fields of POST /v1/grievances.
// Images arrive as file parts and are validated separately.
type submitGrievanceForm struct {
	Title        string   `form:"title" validate:"required,min=3"`
	Description  string   `form:"description" validate:"required,min=10"`
	Departments  []string `form:"departments" validate:"required,min=1,dive,department"`
	Location     string   `form:"location"`
	ContactPhone string   `form:"contact_phone"`
}

type submitGrievanceResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	ImageURLs []string  `json:"image_urls"`
	CreatedAt time.Time `json:"created_at"`
}

// updateGrievanceRequest carries a status and/or priority change. Both fields
// optional, but at least one must be present; the service enforces that.
type updateGrievanceRequest struct {
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=submitted assigned in_progress resolved closed rejected"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
}

type addCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type summaryResponse struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	ByPriority   map[string]int64 `json:"by_priority"`
	ByDepartment map[string]int64 `json:"by_department"`
}

// --- Image analysis ---

type analyzeImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}
