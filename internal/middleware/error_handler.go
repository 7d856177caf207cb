package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSONErrorHandler converts handler errors into the JSON error envelope.
// Unknown routes keep Echo's plain-text Not Found body for compatibility with
// clients probing the surface.
func JSONErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok && msg != "" {
			message = msg
		}
	} else if err != nil {
		message = err.Error()
	}

	c.Logger().Error(err)

	if c.Response().Committed {
		return
	}

	if code == http.StatusNotFound {
		if err := c.String(code, "Not Found"); err != nil {
			c.Logger().Error(err)
		}
		return
	}

	if err := c.JSON(code, errorEnvelope{Success: false, Error: message}); err != nil {
		c.Logger().Error(err)
	}
}
