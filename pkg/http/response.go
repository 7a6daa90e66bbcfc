package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DataResponse writes data as the JSON body with the given status.
func DataResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

// SuccessResponse writes a 200 response.
func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

// CreatedResponse writes created response.
func CreatedResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusCreated, data)
}

// DeletedResponse writes {"success": true}.
func DeletedResponse(c echo.Context) error {
	return DataResponse(c, http.StatusOK, SuccessBody{Success: true})
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return DataResponse(c, http.StatusInternalServerError, ErrorBody{Error: "Internal Server Error"})
}

// AppErrorResponse writes application error response. Anything that is not an
// AppError is reported as a generic 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			return InternalServerErrorResponse(c)
		}
		return DataResponse(c, appErr.Status, ErrorBody{Error: appErr.Message, Details: appErr.Details})
	}
	return InternalServerErrorResponse(c)
}
