package handler

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/service"
	"github.com/blogify/blog-service/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowCredentials: true,
	}))
	r.Use(h.sessionMiddleware)

	v1 := r.Group("/api/v1")
	{
		posts := v1.Group("/posts")
		{
			posts.GET("", h.notRequiredAuthMiddleware, h.postsList)
			posts.GET("/more", h.notRequiredAuthMiddleware, h.postsLoadMore)
			posts.GET("/search", h.postsSearch)
			posts.GET("/my", h.authMiddleware, h.postsGetMy)
			posts.GET("/favorites", h.authMiddleware, h.postsGetFavorites)
			posts.GET("/slug/:postSlug", h.notRequiredAuthMiddleware, h.postsGetBySlug)
			posts.POST("", h.authMiddleware, h.postsCreate)

			post := posts.Group("/:postID")
			{
				post.PATCH("", h.authMiddleware, h.postsEdit)
				post.DELETE("", h.authMiddleware, h.postsDelete)
				post.POST("/like", h.authMiddleware, h.postsLike)
				post.POST("/dislike", h.authMiddleware, h.postsDislike)
				post.POST("/favorite", h.authMiddleware, h.postsFavorite)
				post.POST("/comments", h.authMiddleware, h.commentsAdd)
				post.GET("/comments", h.commentsLoadMore)
			}
		}

		comments := v1.Group("/comments")
		{
			comment := comments.Group("/:commentID")
			{
				comment.GET("/replies", h.commentsGetReplies)
				comment.DELETE("", h.authMiddleware, h.commentsDelete)
			}
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.categoriesList)
			categories.POST("", h.adminMiddleware, h.categoriesCreate)
			categories.GET("/:categorySlug/posts", h.categoryPosts)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", h.tagsList)
			tags.GET("/:tagSlug/posts", h.tagPosts)
		}

		news := v1.Group("/news")
		{
			news.GET("", h.newsList)
			news.POST("", h.adminMiddleware, h.newsCreate)

			newsItem := news.Group("/:postID")
			{
				newsItem.PATCH("", h.adminMiddleware, h.newsUpdate)
				newsItem.DELETE("", h.adminMiddleware, h.newsDelete)
			}
		}

		users := v1.Group("/users")
		{
			users.GET("/:username", h.usersGetProfile)
		}

		v1.POST("/subscription/toggle", h.authMiddleware, h.subscriptionToggle)
		v1.POST("/theme/toggle", h.notRequiredAuthMiddleware, h.themeToggle)
	}

	return r
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}

	user := value.(model.User)
	return &user
}

func (h *Handler) getUserIDFromRequest(c *gin.Context) *uuid.UUID {
	user := h.getUserFromRequest(c)
	if user == nil {
		return nil
	}
	return &user.ID
}

func (h *Handler) getSessionIDFromRequest(c *gin.Context) string {
	return c.GetString("session-id")
}

func (h *Handler) getUserFromAccessToken(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, err
	}

	rawID, ok := claims["id"].(string)
	if !ok {
		return nil, errInvalidAccessToken
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errInvalidAccessToken
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, errInvalidAccessToken
	}

	user := model.User{
		ID:       id,
		Username: username,
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if displayName, ok := claims["display_name"].(string); ok {
		user.DisplayName = &displayName
	}
	if avatarURL, ok := claims["avatar_url"].(string); ok {
		user.AvatarURL = &avatarURL
	}

	return h.services.User.Ensure(ctx, user)
}

// getOffset reads the load-more offset. Absent means the first page;
// anything that is not a non-negative integer is a validation error.
func getOffset(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, errInvalidOffset
	}

	return offset, nil
}

func (h *Handler) offsetFromRequest(c *gin.Context) (int, bool) {
	offset, err := getOffset(c.Query("offset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dtoError(err))
		return 0, false
	}
	return offset, true
}
