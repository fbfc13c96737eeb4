package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
)

// NewEcho returns an echo instance that recovers from panics and logs every
// request through log. Echo's own logger is kept at level.
func NewEcho(logger zerolog.Logger, level log.Lvl) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(level)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := logger.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = logger.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("actor", c.Request().Header.Get(ActorHeader)).
				Msg("request")
			return nil
		},
	}))
	return e
}

// ParseLevel maps a zerolog level name onto echo's logger levels.
func ParseLevel(level string) log.Lvl {
	switch level {
	case "debug", "trace":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error", "fatal", "panic":
		return log.ERROR
	case "disabled":
		return log.OFF
	}
	return log.INFO
}
