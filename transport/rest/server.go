package rest

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
)

func Start(port string, handlers *Handlers) error {
	router := NewRouter(handlers)

	router.Server.ReadTimeout = 10 * time.Second
	router.Server.WriteTimeout = 10 * time.Second
	router.Server.IdleTimeout = 30 * time.Second

	if err := router.Start(":" + port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// NewRouter wires every route; kept separate from Start so tests can
// drive the router without binding a port.
func NewRouter(handlers *Handlers) *echo.Echo {
	router := echo.New()
	router.HideBanner = true

	router.GET("/ping", handlers.Ping)
	router.POST("/matches", handlers.CreateMatch)
	router.GET("/matches/:id", handlers.GetMatch)
	router.GET("/matches/:id/results", handlers.GetResults)
	router.GET("/matches/:id/leader", handlers.GetLeader)

	return router
}
