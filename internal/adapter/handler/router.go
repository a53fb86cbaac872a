package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Router wires all handlers onto the echo instance.
type Router struct {
	auth        *AuthHandler
	team        *TeamHandler
	integration *IntegrationHandler
	analysis    *AnalysisHandler
	authMW      echo.MiddlewareFunc
}

// NewRouter creates a new Router
func NewRouter(auth *AuthHandler, team *TeamHandler, integration *IntegrationHandler, analysis *AnalysisHandler, authMW echo.MiddlewareFunc) *Router {
	return &Router{
		auth:        auth,
		team:        team,
		integration: integration,
		analysis:    analysis,
		authMW:      authMW,
	}
}

// Register mounts every route.
func (r *Router) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", r.auth.Register)
	authGroup.POST("/login", r.auth.Login)
	authGroup.POST("/refresh", r.auth.Refresh)
	authGroup.POST("/logout", r.auth.Logout, r.authMW)
	authGroup.GET("/me", r.auth.Me, r.authMW)

	teams := api.Group("/teams", r.authMW)
	teams.POST("", r.team.Create)
	teams.POST("/invite", r.team.Invite)
	teams.PUT("/webhook", r.team.SetWebhook)
	teams.GET("/me", r.team.MyTeam)

	integrations := api.Group("/integrations", r.authMW)
	integrations.GET("", r.integration.Status)
	integrations.POST("/trello", r.integration.ConnectTrello)
	integrations.DELETE("/trello", r.integration.DisconnectTrello)
	integrations.GET("/trello/boards", r.integration.Boards)
	integrations.GET("/trello/boards/:boardID/lists", r.integration.Lists)
	integrations.POST("/jira", r.integration.ConnectJira)
	integrations.DELETE("/jira", r.integration.DisconnectJira)
	integrations.GET("/jira/projects", r.integration.JiraProjects)
	integrations.GET("/jira/issue-types", r.integration.JiraIssueTypes)

	analysisGroup := api.Group("/analysis", r.authMW)
	analysisGroup.POST("", r.analysis.Analyze)
	analysisGroup.GET("/history", r.analysis.History)
}
