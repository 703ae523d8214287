package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const localLogger = "logger"

// RequestLogger registra método, ruta, estado y latencia de cada petición y deja un
// sublogger con el request id en c.Locals para los handlers.
// Debe montarse después de requestid.New().
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.With().
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.Locals(localLogger, reqLog)

		chainErr := c.Next()
		if chainErr != nil {
			// Deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el estado.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if s, ok := c.Locals("requestid").(string); ok {
		return s
	}
	return c.Get(fiber.HeaderXRequestID)
}

// loggerFrom devuelve el logger de la petición o uno nulo si RequestLogger no está montado.
func loggerFrom(c *fiber.Ctx) zerolog.Logger {
	if l, ok := c.Locals(localLogger).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
