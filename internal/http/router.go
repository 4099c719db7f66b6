package http

import (
	"log/slog"

	"github.com/diegogit03/roleplay-api/internal/config"
	"github.com/diegogit03/roleplay-api/internal/http/handlers"
	"github.com/diegogit03/roleplay-api/internal/http/middleware"
	"github.com/diegogit03/roleplay-api/internal/services"
	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Config          *config.Config
	AuthService     *services.AuthService
	UserService     *services.UserService
	GroupService    *services.GroupService
	RequestService  *services.GroupRequestService
	PasswordService *services.PasswordService
	TokenChecker    middleware.TokenChecker
	Logger          *slog.Logger
	RateLimiter     *middleware.RateLimiter
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	userHandler := handlers.NewUserHandler(deps.UserService)
	sessionHandler := handlers.NewSessionHandler(deps.AuthService)
	passwordHandler := handlers.NewPasswordHandler(deps.PasswordService)
	groupHandler := handlers.NewGroupHandler(deps.GroupService)
	requestHandler := handlers.NewGroupRequestHandler(deps.RequestService)

	router.GET("/healthz", handlers.Health)

	public := router.Group("")
	public.Use(deps.RateLimiter.Middleware())
	public.POST("/users", userHandler.Create)
	public.POST("/sessions", sessionHandler.Create)
	public.POST("/forgot-password", passwordHandler.Forgot)
	public.POST("/reset-password", passwordHandler.Reset)

	protected := router.Group("")
	protected.Use(middleware.JWTAuth(middleware.AuthConfig{
		Secret: deps.Config.JWTSecret,
		Tokens: deps.TokenChecker,
	}))
	{
		protected.PUT("/users/:userId", userHandler.Update)
		protected.DELETE("/sessions", sessionHandler.Destroy)

		protected.GET("/groups", groupHandler.List)
		protected.POST("/groups", groupHandler.Create)
		protected.PUT("/groups/:groupId", groupHandler.Update)
		protected.DELETE("/groups/:groupId", groupHandler.Delete)
		protected.DELETE("/groups/:groupId/players/:playerId", groupHandler.RemovePlayer)

		protected.GET("/groups/:groupId/requests", requestHandler.List)
		protected.POST("/groups/:groupId/requests", requestHandler.Create)
		protected.POST("/groups/:groupId/requests/:requestId/accept", requestHandler.Accept)
		protected.DELETE("/groups/:groupId/requests/:requestId", requestHandler.Reject)
	}

	return router
}
