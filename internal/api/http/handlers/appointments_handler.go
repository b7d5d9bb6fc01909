package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-api/internal/api/dto"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/service"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// AppointmentsHandler serves /appointments.
type AppointmentsHandler struct {
	service *service.AppointmentService
	now     func() time.Time
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService, now: time.Now}
}

// List GET /appointments?staff_id=&client_id=&date=&status=a,b.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	staffID, err := optionalUUIDQuery(c, "staff_id")
	if err != nil {
		return err
	}
	clientID, err := optionalUUIDQuery(c, "client_id")
	if err != nil {
		return err
	}
	filter := repository.AppointmentFilter{StaffID: staffID, ClientID: clientID, Page: pageFromQuery(c)}
	if raw := optionalQuery(c, "date"); raw != nil {
		day, err := domain.ParseDate(*raw)
		if err != nil {
			return apperrors.NewValidationError("invalid date filter", map[string]any{"date": domain.DateLayout})
		}
		filter.Date = &day
	}
	if raw := optionalQuery(c, "status"); raw != nil {
		for _, part := range strings.Split(*raw, ",") {
			status := domain.AppointmentStatus(strings.TrimSpace(part))
			if !status.Valid() {
				return apperrors.NewValidationError("invalid status filter", map[string]any{"status": part})
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	items, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.List("appointments", dto.NewAppointmentList(items, h.now())))
}

// Upcoming GET /appointments/upcoming?staff_id=.
func (h *AppointmentsHandler) Upcoming(c *fiber.Ctx) error {
	staffID, err := optionalUUIDQuery(c, "staff_id")
	if err != nil {
		return err
	}
	items, err := h.service.Upcoming(c.UserContext(), staffID, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.List("appointments", dto.NewAppointmentList(items, h.now())))
}

// Get GET /appointments/:id.
func (h *AppointmentsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	appt, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("appointment", dto.NewAppointmentResponse(appt, h.now())))
}

// Create POST /appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var req dto.CreateAppointmentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	day, err := domain.ParseDate(req.Date)
	if err != nil {
		return apperrors.NewValidationError("validation failed", map[string]any{"date": domain.DateLayout})
	}
	appt, err := h.service.Create(c.UserContext(), caller.UserID, service.AppointmentInput{
		Title:     req.Title,
		Notes:     req.Notes,
		ClientID:  req.ClientID,
		StaffID:   req.StaffID,
		Date:      day,
		StartTime: *req.StartTime,
		EndTime:   *req.EndTime,
		Status:    req.Status,
		Location:  req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Success("appointment", dto.NewAppointmentResponse(appt, h.now())))
}

// Update PATCH /appointments/:id. Changing staff, date or times re-runs the
// conflict check.
func (h *AppointmentsHandler) Update(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAppointmentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	patch := service.AppointmentPatch{
		Title:     req.Title,
		Notes:     req.Notes,
		ClientID:  req.ClientID,
		StaffID:   req.StaffID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    req.Status,
		Location:  req.Location,
	}
	if req.Date != nil {
		day, err := domain.ParseDate(*req.Date)
		if err != nil {
			return apperrors.NewValidationError("validation failed", map[string]any{"date": domain.DateLayout})
		}
		patch.Date = &day
	}
	appt, err := h.service.Update(c.UserContext(), caller.UserID, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("appointment", dto.NewAppointmentResponse(appt, h.now())))
}

// UpdateStatus PATCH /appointments/:id/status.
func (h *AppointmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAppointmentStatusRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	appt, err := h.service.UpdateStatus(c.UserContext(), caller.UserID, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("appointment", dto.NewAppointmentResponse(appt, h.now())))
}

// Delete DELETE /appointments/:id.
func (h *AppointmentsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
