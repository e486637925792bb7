package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paydesk/payroll-backend-go/internal/domain/notification"
	"github.com/paydesk/payroll-backend-go/internal/handler/http/middleware"
	"github.com/paydesk/payroll-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{notificationService: notificationService}
}

func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == nil {
		response.Forbidden(w, "No employee linked to this account")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	result, err := h.notificationService.List(r.Context(), *employeeID, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result == nil {
		result = []notification.Notification{}
	}

	response.Success(w, result)
}

func (h *notificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationID")

	if err := h.notificationService.MarkRead(r.Context(), notificationID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}
