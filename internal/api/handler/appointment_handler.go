package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smilecare/clinic-api/internal/core/ports"
)

// AppointmentHandler handles booking and appointment listings.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	Date   string `json:"date"   validate:"required,datetime=2006-01-02"`
	Time   string `json:"time"   validate:"required,datetime=15:04"`
	Reason string `json:"reason" validate:"required"`
}

// Book handles POST /appointments.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	appt, err := h.service.Book(c.Request().Context(), ports.BookInput{
		PatientID: userID,
		Date:      req.Date,
		Time:      req.Time,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, appt)
}

// ListMine handles GET /appointments.
//
// @Summary      List own appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Appointment
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /appointments [get]
func (h *AppointmentHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	appts, err := h.service.ListForPatient(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, appts)
}

// ListAll handles GET /staff/appointments.
//
// @Summary      List all appointments with patient details
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PatientAppointment
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /staff/appointments [get]
func (h *AppointmentHandler) ListAll(c echo.Context) error {
	appts, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, appts)
}

// ListPatients handles GET /staff/patients.
//
// @Summary      List all registered patients
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PublicProfile
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /staff/patients [get]
func (h *AppointmentHandler) ListPatients(c echo.Context) error {
	patients, err := h.service.ListPatients(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, patients)
}
