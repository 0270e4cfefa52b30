// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"voidbot/internal/delivery/http/middleware"
	"voidbot/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	GuildHandler   *handler.GuildHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	guildHandler   *handler.GuildHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		guildHandler:   params.GuildHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Server-rendered OAuth redirect target, registered exactly as
	// configured at the provider.
	e.GET("/auth/callback", r.authHandler.DiscordCallback)

	api := e.Group("/api")
	{
		api.GET("/health", handler.HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.GET("/discord/login", r.authHandler.DiscordLogin)
			authGroup.POST("/discord", r.authHandler.DiscordExchange)
			authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		}

		discordGroup := api.Group("/discord")
		discordGroup.Use(r.authMiddleware.Authenticate)
		{
			discordGroup.GET("/guilds", r.guildHandler.ListGuilds)
		}

		guildGroup := api.Group("/guilds")
		guildGroup.Use(r.authMiddleware.Authenticate)
		{
			guildGroup.PUT("/active", r.guildHandler.SetActiveGuild)
			guildGroup.GET("/active", r.guildHandler.GetActiveGuild)
			guildGroup.DELETE("/active", r.guildHandler.ClearActiveGuild)
			guildGroup.GET("/:id/invite", r.guildHandler.BuildInvite)
			guildGroup.GET("/:id/invite/qr", r.guildHandler.BuildInviteQR)
		}
	}
}
