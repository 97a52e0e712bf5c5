package echoapi

import (
	"github.com/labstack/echo/v4"
)

// envelope is the body of every response.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func ok(ctx echo.Context, code int, data interface{}, message string) error {
	return ctx.JSON(code, envelope{Success: true, Data: data, Message: message})
}
