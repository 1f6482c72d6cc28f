package api

import (
	"context"
	"errors"

	"StockScout/internal/domain/models"
	drepo "StockScout/internal/domain/repository"
	xhttp "StockScout/pkg/http"
	xlogger "StockScout/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockInfoProvider runs the aggregation pipeline for one query.
type StockInfoProvider interface {
	GetStockInfo(ctx context.Context, query string) (*models.StockInfo, error)
}

// AgentRunner answers a query through an LLM agent.
type AgentRunner interface {
	Run(ctx context.Context, mode, sessionID, query string) (string, error)
}

// StockEchoHandler exposes the pipeline and the agents over HTTP.
type StockEchoHandler struct {
	logger *xlogger.Logger
	agg    StockInfoProvider
	agent  AgentRunner // nil when no agent is configured
}

func NewStockEchoHandler(logger *xlogger.Logger, agg StockInfoProvider, agent AgentRunner) *StockEchoHandler {
	return &StockEchoHandler{logger: logger, agg: agg, agent: agent}
}

func (h *StockEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stock-info", h.StockInfo)
	g.POST("/ask", h.Ask)
	e.GET("/healthz", h.Health)
}

// StockInfo answers GET /api/stock-info?query=... through the pipeline only.
func (h *StockEchoHandler) StockInfo(c echo.Context) error {
	req := &models.StockInfoRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	info, err := h.agg.GetStockInfo(c.Request().Context(), req.Query)
	if err != nil {
		h.logger.Error("stock info failed", xlogger.String("query", req.Query), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, appErrorFor(err))
	}
	return xhttp.SuccessResponse(c, info)
}

// Ask answers POST /api/ask through an agent (tool or schema mode).
func (h *StockEchoHandler) Ask(c echo.Context) error {
	req := &models.AskRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.agent == nil {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("agent is not configured"))
	}

	answer, err := h.agent.Run(c.Request().Context(), req.Mode, req.SessionID, req.Query)
	if err != nil {
		h.logger.Error("agent run failed",
			xlogger.String("mode", req.Mode),
			xlogger.String("session_id", req.SessionID),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, appErrorFor(err))
	}

	return xhttp.SuccessResponse(c, &models.AskResponse{
		Mode:      req.Mode,
		SessionID: req.SessionID,
		Answer:    answer,
	})
}

func (h *StockEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// appErrorFor maps pipeline error kinds onto HTTP statuses.
func appErrorFor(err error) error {
	var (
		unresolved   *drepo.UnresolvedTickerError
		noData       *drepo.NoDataError
		insufficient *drepo.InsufficientDataError
		transport    *drepo.TransportError
		appErr       *xhttp.AppError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &unresolved):
		return xhttp.NotFoundError(unresolved.Error()).WithError(err)
	case errors.As(err, &noData):
		return xhttp.NotFoundError(noData.Error()).WithError(err)
	case errors.As(err, &insufficient):
		return xhttp.UnprocessableError(insufficient.Error()).WithError(err)
	case errors.As(err, &transport):
		return xhttp.BadGatewayError(transport.Error()).WithError(err)
	default:
		return xhttp.InternalError("request failed").WithError(err)
	}
}
