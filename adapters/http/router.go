package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/assistant-relay/pkg/auth"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

// RouterDeps lists everything the router mounts. Auth, Sync and Stats are nil
// when the server runs without a database; their routes are then not registered.
type RouterDeps struct {
	Logger      logger.Logger
	CORSOrigins []string
	JWT         *auth.JWTService

	Static *StaticHandler
	Chat   *ChatHandler
	Auth   *AuthHandler
	Sync   *SyncHandler
	Stats  *StatsHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		RecoveryMiddleware(d.Logger),
		RequestLogMiddleware(d.Logger),
		CORSMiddleware(d.CORSOrigins),
		ErrorMiddleware(d.Logger),
	)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		chatRoute := api.Group("/chat")
		if d.JWT != nil {
			chatRoute.Use(OptionalAuthMiddleware(d.JWT))
		}
		chatRoute.POST("", d.Chat.Chat)

		if d.Auth != nil {
			authGroup := api.Group("/auth")
			authGroup.POST("/register", d.Auth.Register)
			authGroup.POST("/login", d.Auth.Login)
		}

		if d.JWT != nil && (d.Sync != nil || d.Stats != nil) {
			private := api.Group("/")
			private.Use(AuthMiddleware(d.JWT, d.Logger))
			{
				if d.Sync != nil {
					private.GET("/sync", d.Sync.GetWorkspace)
					private.PUT("/sync", d.Sync.PutWorkspace)
				}
				if d.Stats != nil {
					private.GET("/stats/chat", d.Stats.ChatStats)
				}
			}
		}
	}

	if d.Static != nil {
		router.GET("/", d.Static.Index)
		router.NoRoute(d.Static.Asset)
	}

	return router
}
