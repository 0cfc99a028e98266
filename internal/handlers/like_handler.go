package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tahmid11/socialbook/backend/internal/models"
	"github.com/tahmid11/socialbook/backend/internal/repositories"
	"github.com/tahmid11/socialbook/backend/pkg/logger"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		postRepository:         postRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.LikePost)
	g.POST("/posts/:post_id/unlike", h.UnlikePost)
	g.GET("/posts/:post_id/likes", h.GetLikesForPost)
}

func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	return uint(id), nil
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	like := &models.Like{
		PostID: postID,
		UserID: currentUserID,
	}

	// The unique (user, post) index resolves concurrent duplicate attempts.
	if err := h.likeRepository.CreateLike(like); err != nil {
		if err == repositories.ErrAlreadyExists {
			return echo.NewHTTPError(http.StatusBadRequest, "You have already liked this post")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// No self-notification: liking your own post stays silent.
	if post.AuthorID != currentUserID {
		actor, err := h.userRepository.GetUserByID(currentUserID)
		if err == nil {
			notif := &models.Notification{
				RecipientID: post.AuthorID,
				ActorID:     currentUserID,
				Verb:        models.VerbLike,
				TargetKind:  models.TargetPost,
				TargetID:    post.ID,
				Message:     actor.Username + " liked your post",
			}
			if err := h.notificationRepository.CreateNotification(notif); err != nil {
				logger.S.Warnw("like notification write failed", "actor", currentUserID, "post", post.ID, "err", err)
			}
		}
	}

	count, _ := h.likeRepository.GetLikesCountByPostID(postID)

	return c.JSON(http.StatusCreated, echo.Map{
		"post_id":     postID,
		"likes_count": count,
	})
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.likeRepository.DeleteLike(postID, currentUserID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, "You have not liked this post")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, _ := h.likeRepository.GetLikesCountByPostID(postID)

	return c.JSON(http.StatusOK, echo.Map{
		"post_id":     postID,
		"likes_count": count,
	})
}

// GetLikesForPost retrieves the like count and likers for a specific post
func (h *LikeHandler) GetLikesForPost(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likes, err := h.likeRepository.GetLikesByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likers := make([]models.UserCompact, 0, len(likes))
	for _, like := range likes {
		if user, err := h.userRepository.GetUserByID(like.UserID); err == nil {
			likers = append(likers, user.ToCompact())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post_id":     postID,
		"likes_count": len(likes),
		"likers":      likers,
	})
}
