package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/pkg/httpcontext"
)

// DashboardBuilder is implemented by the dashboard use case.
type DashboardBuilder interface {
	Build(ctx context.Context, params domain.SearchParams) (*domain.Dashboard, error)
}

type DashboardHandler struct {
	baseHandler
	uc DashboardBuilder
}

func NewDashboardHandler(uc DashboardBuilder, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Dashboard with todos, file statuses and deadlines
// @Tags dashboard
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Get(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	params := domain.SearchParams{
		Context: string(args.Peek("context")),
		Project: string(args.Peek("project")),
		Search:  string(args.Peek("search")),
		SortBy:  string(args.Peek("sort_by")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dashboard, err := h.uc.Build(stdCtx, params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.log(stdCtx).Debug("dashboard built",
		zap.Int("todos", len(dashboard.Todos)),
		zap.Int("files", len(dashboard.LocalFiles)))
	h.respondSuccess(ctx, http.StatusOK, dashboard)
}
