package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/homepage/api/transport"
	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/pkg/httpcontext"
)

// TodoMutator is implemented by the todo use case.
type TodoMutator interface {
	MarkCompleted(ctx context.Context, hash string, completed bool) (string, error)
	ArchiveFinished(ctx context.Context) (int, error)
}

type TodoHandler struct {
	baseHandler
	uc TodoMutator
}

func NewTodoHandler(uc TodoMutator, adapter *httpcontext.Adapter, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Mark a todo completed or not completed
// @Tags todos
// @Router /todos [post]
func (h *TodoHandler) Post(ctx *fasthttp.RequestCtx) {
	var req transport.TodosPost
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Hash == "" {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	newHash, err := h.uc.MarkCompleted(stdCtx, req.Hash, req.Completed)
	if err != nil {
		h.log(stdCtx).Info("todo update rejected", zap.String("hash", req.Hash), zap.Error(err))
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.HashResponse{Hash: newHash})
}

// @Summary Move finished todos to done.txt
// @Tags todos
// @Router /actions/archive_finished [post]
func (h *TodoHandler) ArchiveFinished(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	n, err := h.uc.ArchiveFinished(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.ArchiveResponse{NumArchived: n})
}
