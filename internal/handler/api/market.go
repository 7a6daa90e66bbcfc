package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"MoneyRoutine/internal/domain/models"
	"MoneyRoutine/internal/usecase"
	xhttp "MoneyRoutine/pkg/http"
	xlogger "MoneyRoutine/pkg/logger"
)

const streamWriteWait = 10 * time.Second

// MarketHandler serves the aggregated market snapshot.
type MarketHandler struct {
	logger   *xlogger.Logger
	svc      *usecase.MarketService
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewMarketHandler(logger *xlogger.Logger, svc *usecase.MarketService, streamInterval time.Duration) *MarketHandler {
	if streamInterval <= 0 {
		streamInterval = 30 * time.Second
	}
	return &MarketHandler{
		logger:   logger,
		svc:      svc,
		interval: streamInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *MarketHandler) Register(g *echo.Group) {
	g.GET("/market-data", h.Snapshot)
	g.POST("/market-data/merge", h.Merge)
	g.GET("/market-data/stream", h.Stream)
	g.GET("/market-data/history", h.History)
}

func (h *MarketHandler) Snapshot(c echo.Context) error {
	data, err := h.svc.Snapshot(c.Request().Context())
	if err != nil {
		h.logger.Error("market aggregation failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, data)
}

// Merge applies the posted manual overrides to the current snapshot.
func (h *MarketHandler) Merge(c echo.Context) error {
	manual := &models.ManualMarketData{}
	if err := c.Bind(manual); err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("malformed manual market data").WithError(err))
	}
	data, err := h.svc.Merged(c.Request().Context(), manual)
	if err != nil {
		h.logger.Error("market merge failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, data)
}

func (h *MarketHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	obs, err := h.svc.History(c.Request().Context(), models.Slot(req.Slot), req.Limit)
	if errors.Is(err, usecase.ErrHistoryDisabled) {
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, xhttp.ErrorBody{Error: "market history is disabled"})
	}
	if err != nil {
		h.logger.Error("market history query failed", xlogger.String("slot", req.Slot), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, obs)
}

// Stream upgrades to a websocket and pushes the snapshot immediately and then
// on every interval until the client goes away.
func (h *MarketHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already wrote the error response
		h.logger.Debug("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request().Context()))
	defer cancel()

	// Drain client frames; a read error means the peer closed.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		if err := h.push(ctx, conn); err != nil {
			h.logger.Debug("market stream closed", xlogger.Error(err))
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (h *MarketHandler) push(ctx context.Context, conn *websocket.Conn) error {
	data, err := h.svc.Snapshot(ctx)
	if err != nil {
		h.logger.Error("market aggregation failed", xlogger.Error(err))
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteJSON(data)
}
