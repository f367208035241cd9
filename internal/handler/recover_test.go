package handler

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// echoRecover is the recover middleware as wired in main: the panic becomes
// an error that reaches ErrorHandler.
func echoRecover() echo.MiddlewareFunc {
	return echomw.RecoverWithConfig(echomw.RecoverConfig{DisableErrorHandler: true, DisablePrintStack: true})
}
