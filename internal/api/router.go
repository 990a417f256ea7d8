package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yuna/nekotalk/internal/api/handler"
	"github.com/yuna/nekotalk/internal/api/middleware"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/service"
)

// Services bundles the service dependencies of the router.
type Services struct {
	User      *service.UserService
	Cat       *service.CatService
	Post      *service.PostService
	Translate *service.TranslateService
	Consult   *service.ConsultService
	Media     *service.MediaService
}

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - services: wired service layer.
//   - log: base logger for request logging.
//   - mode: Gin mode (debug, release, test).
//   - cors: CORS configuration.
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(services Services, log *logger.Logger, mode string, cors middleware.CORSConfig) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cors))

	healthHandler := handler.NewHealthHandler()
	userHandler := handler.NewUserHandler(services.User)
	catHandler := handler.NewCatHandler(services.Cat)
	postHandler := handler.NewPostHandler(services.Post)
	searchHandler := handler.NewSearchHandler(services.Post, services.Cat)
	translateHandler := handler.NewTranslateHandler(services.Translate)
	consultHandler := handler.NewConsultHandler(services.Consult)
	uploadHandler := handler.NewUploadHandler(services.Media)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")

	// Public routes; optional auth enables viewer decoration
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(services.User))
	{
		public.POST("/users", userHandler.Register)
		public.GET("/users/:id", userHandler.Profile)
		public.GET("/users/:id/following", catHandler.FollowedByUser)
		public.GET("/users/:id/posts", postHandler.ByUser)
		public.GET("/cats/:id", catHandler.Get)
		public.GET("/cats/:id/posts", postHandler.ByCat)
		public.GET("/cats/:id/followers", catHandler.Followers)
		public.GET("/posts", postHandler.Feed)
		public.GET("/posts/:id", postHandler.Get)
		public.GET("/search", searchHandler.Search)
	}

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(services.User))
	{
		authed.GET("/users/me", userHandler.Me)
		authed.PUT("/users/me", userHandler.UpdateMe)

		authed.GET("/cats", catHandler.ListMine)
		authed.POST("/cats", catHandler.Create)
		authed.PUT("/cats/:id", catHandler.Update)
		authed.DELETE("/cats/:id", catHandler.Delete)
		authed.POST("/cats/:id/follow", catHandler.ToggleFollow)

		authed.POST("/posts", postHandler.Create)
		authed.DELETE("/posts/:id", postHandler.Delete)
		authed.POST("/posts/:id/like", postHandler.ToggleLike)
		authed.POST("/posts/:id/comments", postHandler.Comment)
		authed.GET("/users/me/likes", postHandler.LikedByMe)

		authed.POST("/translate", translateHandler.Translate)

		authed.POST("/consult", consultHandler.Consult)
		authed.POST("/consult/save", consultHandler.Save)
		authed.GET("/consult/history", consultHandler.History)
		authed.DELETE("/consult/history/:id", consultHandler.DeleteRecord)
		authed.GET("/consult/video-count", consultHandler.VideoCount)

		authed.POST("/upload", uploadHandler.Upload)
	}

	return r
}
