package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cutconnect/internal/domain"
	"cutconnect/internal/service"
	httpez "cutconnect/internal/transport/http/ez"
	resp "cutconnect/internal/transport/http/response"
)

type AppointmentHandler struct {
	svc *service.BookingService
	log *zap.Logger
}

func NewAppointmentHandler(svc *service.BookingService, l *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, log: l}
}

func (h *AppointmentHandler) Priority() int { return 20 }

type listAppointmentsQ struct {
	BarberID string `form:"barber_id"`
	Limit    int    `form:"limit,default=50"`
}

func (h *AppointmentHandler) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, h.log)

	httpez.RegisterAction(ez, httpez.Action[domain.Appointment, resp.ID]{
		Method: http.MethodPost,
		Path:   "/appointments",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *domain.Appointment) (resp.ID, error) {
			id, err := h.svc.CreateAppointment(c.Request.Context(), in)
			switch {
			case errors.Is(err, domain.ErrInvalidArgument):
				return resp.ID{}, httpez.BadRequest("Invalid barber_id", err)
			case errors.Is(err, domain.ErrNotFound):
				return resp.ID{}, httpez.NotFound("Barber not found", err)
			case err != nil:
				return resp.ID{}, err
			}
			return resp.ID{ID: id}, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[listAppointmentsQ, []domain.AppointmentDocument]{
		Method: http.MethodGet,
		Path:   "/appointments",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listAppointmentsQ) ([]domain.AppointmentDocument, error) {
			return h.svc.ListAppointments(c.Request.Context(), in.BarberID, in.Limit)
		},
	})
}
