package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	domrepo "MoneyRoutine/internal/domain/repository"
	xhttp "MoneyRoutine/pkg/http"
	xlogger "MoneyRoutine/pkg/logger"
)

// Router mounts every API handler under /api.
type Router struct {
	market  *MarketHandler
	content *ContentHandler
	admin   *AdminHandler
}

func NewRouter(market *MarketHandler, content *ContentHandler, admin *AdminHandler) *Router {
	return &Router{market: market, content: content, admin: admin}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	r.market.Register(g)
	r.content.Register(g)
	r.admin.Register(g)
}

// storeError maps store errors onto responses; anything unexpected is logged
// and reported as a generic 500.
func storeError(c echo.Context, log *xlogger.Logger, what string, err error) error {
	if errors.Is(err, domrepo.ErrNotFound) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("%s not found", what))
	}
	log.Error("request failed",
		xlogger.String("method", c.Request().Method),
		xlogger.String("path", c.Path()),
		xlogger.Error(err),
	)
	return xhttp.InternalServerErrorResponse(c)
}
