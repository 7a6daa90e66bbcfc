package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"MoneyRoutine/internal/domain/models"
	domsvc "MoneyRoutine/internal/domain/service"
	xhttp "MoneyRoutine/pkg/http"
	xlogger "MoneyRoutine/pkg/logger"
)

const wrongPasswordMessage = "비밀번호가 올바르지 않습니다."

type AdminHandler struct {
	logger *xlogger.Logger
	auth   domsvc.Authenticator
}

func NewAdminHandler(logger *xlogger.Logger, auth domsvc.Authenticator) *AdminHandler {
	return &AdminHandler{logger: logger, auth: auth}
}

func (h *AdminHandler) Register(g *echo.Group) {
	g.POST("/admin/verify", h.Verify)
}

// Verify checks the shared admin secret. A malformed body is treated as a
// wrong password.
func (h *AdminHandler) Verify(c echo.Context) error {
	req := &models.AdminVerifyRequest{}
	_ = c.Bind(req)

	if !h.auth.Verify(c.Request().Context(), req.Password) {
		h.logger.Warn("admin verify rejected", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusUnauthorized, xhttp.SuccessBody{Success: false, Error: wrongPasswordMessage})
	}
	return xhttp.DataResponse(c, http.StatusOK, xhttp.SuccessBody{Success: true})
}
