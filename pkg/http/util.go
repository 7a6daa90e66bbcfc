package http

import (
	"github.com/labstack/echo/v4"

	xutil "MoneyRoutine/pkg/util"
)

// PathDate reads a YYYY-MM-DD path parameter.
func PathDate(c echo.Context, name string) (string, *AppError) {
	v := c.Param(name)
	if !xutil.IsDate(v) {
		return "", BadRequestErrorf("%s must be a date in YYYY-MM-DD format", name)
	}
	return v, nil
}
