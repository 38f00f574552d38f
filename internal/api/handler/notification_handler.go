package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/villageconnect/grievance-system/internal/core/domain"
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

// NotificationHandler exposes each user's notification inbox.
type NotificationHandler struct {
	notifications ports.NotificationRepository
}

func NewNotificationHandler(notifications ports.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /v1/notifications — the caller's inbox, newest first.
//
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Max results"
// @Success      200    {array}  domain.Notification
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	list, err := h.notifications.ListByUser(c.Request().Context(), actor.ID, queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// MarkRead handles POST /v1/notifications/:id/read. Only the recipient may
// flip the read flag.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Notification ID"
// @Success      204  "No Content"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	n, err := h.notifications.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if n.UserID != actor.ID {
		return fmt.Errorf("mark read: %w", domain.ErrForbidden)
	}

	if err := h.notifications.MarkRead(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
