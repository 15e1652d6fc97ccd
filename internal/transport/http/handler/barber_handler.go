package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cutconnect/internal/domain"
	"cutconnect/internal/service"
	httpez "cutconnect/internal/transport/http/ez"
	resp "cutconnect/internal/transport/http/response"
)

type BarberHandler struct {
	svc *service.BookingService
	log *zap.Logger
}

func NewBarberHandler(svc *service.BookingService, l *zap.Logger) *BarberHandler {
	return &BarberHandler{svc: svc, log: l}
}

func (h *BarberHandler) Priority() int { return 10 }

type listBarbersQ struct {
	Limit int `form:"limit,default=50"`
}

func (h *BarberHandler) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api, h.log)

	httpez.RegisterAction(ez, httpez.Action[domain.Barber, resp.ID]{
		Method: http.MethodPost,
		Path:   "/barbers",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *domain.Barber) (resp.ID, error) {
			id, err := h.svc.RegisterBarber(c.Request.Context(), in)
			if err != nil {
				return resp.ID{}, err
			}
			return resp.ID{ID: id}, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[listBarbersQ, []domain.BarberDocument]{
		Method: http.MethodGet,
		Path:   "/barbers",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listBarbersQ) ([]domain.BarberDocument, error) {
			return h.svc.ListBarbers(c.Request.Context(), in.Limit)
		},
	})
}
