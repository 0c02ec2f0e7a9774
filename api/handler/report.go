package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/taskgrid/backend/pkg/httpcontext"
	reportUC "github.com/taskgrid/backend/usecase/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	baseHandler
	uc *reportUC.UseCase
}

func NewReportHandler(uc *reportUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Export all tasks as a spreadsheet
// @Tags reports
// @Router /api/v1/reports/export/tasks [get]
func (h *ReportHandler) ExportTasks(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	f, err := h.uc.ExportTasks(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.stream(ctx, f, "tasks_report")
}

// @Summary Export per-user task counts as a spreadsheet
// @Tags reports
// @Router /api/v1/reports/export/users [get]
func (h *ReportHandler) ExportUsers(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	f, err := h.uc.ExportUsers(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.stream(ctx, f, "users_report")
}

func (h *ReportHandler) stream(ctx *fasthttp.RequestCtx, f *excelize.File, name string) {
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102"))
	ctx.Response.Header.SetContentType(xlsxContentType)
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(buf.Bytes())
}
