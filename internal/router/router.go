package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"photoshare/internal/auth"
	"photoshare/internal/cache"
	"photoshare/internal/handler"
	"photoshare/internal/middleware"
	"photoshare/internal/rbac"
	"photoshare/internal/repository"
)

// allMembers is the allow-list shared by read and create operations.
var allMembers = []rbac.Role{rbac.RoleAdmin, rbac.RoleModerator, rbac.RoleUser}

// moderation is the allow-list for curating other users' content.
var moderation = []rbac.Role{rbac.RoleAdmin, rbac.RoleModerator}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	tokens *auth.TokenService,
	userRepo repository.UserRepository,
	principals *cache.Client,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	imageHandler *handler.ImageHandler,
	tagHandler *handler.TagHandler,
	ratingHandler *handler.RatingHandler,
	commentHandler *handler.CommentHandler,
	searchHandler *handler.SearchHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.GET("/auth/confirm/:token", authHandler.ConfirmEmail)
	api.POST("/auth/request_email", authHandler.ResendVerification)
	api.GET("/users/:username", userHandler.Profile)

	// Secured routes: access-token verification, then principal loading.
	secured := api.Group("",
		middleware.Authenticate(tokens),
		middleware.LoadPrincipal(userRepo, principals),
	)

	secured.GET("/users/me", userHandler.Me)
	secured.PUT("/users/:username", userHandler.UpdateProfile, middleware.RequireRoles(allMembers...))
	secured.PATCH("/users/:email/blacklist", userHandler.Blacklist, middleware.RequireRoles(rbac.RoleAdmin))

	secured.GET("/images", imageHandler.ListImages, middleware.RequireRoles(allMembers...))
	secured.GET("/images/:id", imageHandler.GetImage, middleware.RequireRoles(allMembers...))
	secured.GET("/images/user/:user_id", imageHandler.ListUserImages, middleware.RequireRoles(rbac.RoleAdmin))
	secured.POST("/images", imageHandler.AddImage, middleware.RequireRoles(allMembers...))
	secured.PUT("/images/:id", imageHandler.UpdateImage, middleware.RequireRoles(allMembers...))
	secured.PUT("/images/:id/tags", imageHandler.UpdateTags, middleware.RequireRoles(allMembers...))
	secured.DELETE("/images/:id", imageHandler.DeleteImage, middleware.RequireRoles(allMembers...))

	secured.GET("/tags", tagHandler.ListTags, middleware.RequireRoles(allMembers...))
	secured.GET("/tags/:tag_id", tagHandler.GetTag, middleware.RequireRoles(allMembers...))
	secured.POST("/tags", tagHandler.CreateTag, middleware.RequireRoles(allMembers...))
	secured.PUT("/tags/:tag_id", tagHandler.UpdateTag, middleware.RequireRoles(moderation...))
	secured.DELETE("/tags/:tag_id", tagHandler.DeleteTag, middleware.RequireRoles(moderation...))

	secured.GET("/ratings/image/:image_id", ratingHandler.ImageRating, middleware.RequireRoles(allMembers...))
	secured.GET("/ratings/:rating_id", ratingHandler.GetRating, middleware.RequireRoles(allMembers...))
	secured.POST("/ratings/:image_id", ratingHandler.CreateRating, middleware.RequireRoles(allMembers...))
	secured.PUT("/ratings/:rating_id", ratingHandler.UpdateRating, middleware.RequireRoles(moderation...))
	secured.DELETE("/ratings/:rating_id", ratingHandler.DeleteRating, middleware.RequireRoles(moderation...))

	secured.GET("/search", searchHandler.SearchImages, middleware.RequireRoles(allMembers...))
	secured.GET("/search/image/:user_id", searchHandler.SearchUserImages, middleware.RequireRoles(moderation...))

	secured.GET("/comments/image/:image_id", commentHandler.ListComments, middleware.RequireRoles(allMembers...))
	secured.POST("/comments/:image_id", commentHandler.CreateComment, middleware.RequireRoles(allMembers...))
	secured.PUT("/comments/:comment_id", commentHandler.UpdateComment, middleware.RequireRoles(allMembers...))
	secured.DELETE("/comments/:comment_id", commentHandler.DeleteComment, middleware.RequireRoles(moderation...))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
