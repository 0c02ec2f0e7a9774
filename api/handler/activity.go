package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/internal/services"
	"github.com/taskgrid/backend/pkg/httpcontext"
)

type ActivityHandler struct {
	baseHandler
	log *services.ActivityLog
}

func NewActivityHandler(log *services.ActivityLog, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		log:         log,
	}
}

// @Summary Recent task activity
// @Tags activity
// @Router /api/v1/activity [get]
func (h *ActivityHandler) GetRecent(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		h.respondError(ctx, domain.ErrForbidden)
		return
	}

	limit := 50
	if raw := string(ctx.QueryArgs().Peek("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	records, err := h.log.Recent(limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, records)
}
