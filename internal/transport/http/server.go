package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roomchat/roomchat/internal/auth"
	"github.com/roomchat/roomchat/internal/config"
	"github.com/roomchat/roomchat/internal/server"
)

// NewServer builds the HTTP server: auth API, room list, health, and
// the WebSocket endpoint.
func NewServer(hub *server.Hub, authService *auth.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	api := NewAPIHandlers(authService, cfg.Rooms, logger)
	router.GET("/health", api.Health)
	router.POST("/api/register", api.Register)
	router.POST("/api/login", api.Login)
	router.POST("/api/guest", api.GuestLogin)
	router.GET("/api/rooms", api.Rooms)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, authService, cfg.AllowedOrigins, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
