package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tahmid11/socialbook/backend/internal/models"
	"github.com/tahmid11/socialbook/backend/internal/repositories"
	"github.com/tahmid11/socialbook/backend/pkg/logger"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/accounts/follow/:username", h.FollowUser)
	g.POST("/accounts/unfollow/:username", h.UnfollowUser)
	g.GET("/accounts/following", h.GetFollowing)
	g.GET("/accounts/followers", h.GetFollowers)
}

// followCounts builds the updated counts payload returned by follow/unfollow.
func (h *FollowHandler) followCounts(userID uint) echo.Map {
	followers, _ := h.followRepository.GetFollowersCount(userID)
	following, _ := h.followRepository.GetFollowingCount(userID)
	return echo.Map{
		"followers_count": followers,
		"following_count": following,
	}
}

// FollowUser follows a user by username
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	target, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if currentUserID == target.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}

	follow := &models.Follow{
		FollowerID:  currentUserID,
		FollowingID: target.ID,
	}

	// The unique index resolves concurrent duplicate attempts, so a prior
	// IsFollowing check is not needed for correctness.
	if err := h.followRepository.CreateFollow(follow); err != nil {
		if err == repositories.ErrAlreadyExists {
			return echo.NewHTTPError(http.StatusBadRequest, "You are already following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Best-effort notification after the edge committed; actor and recipient
	// are distinct here, so no self-notification suppression is needed.
	actor, err := h.userRepository.GetUserByID(currentUserID)
	if err == nil {
		notif := &models.Notification{
			RecipientID: target.ID,
			ActorID:     currentUserID,
			Verb:        models.VerbFollow,
			Message:     actor.Username + " started following you",
		}
		if err := h.notificationRepository.CreateNotification(notif); err != nil {
			logger.S.Warnw("follow notification write failed", "actor", currentUserID, "recipient", target.ID, "err", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "You are now following " + target.Username,
		"counts":  h.followCounts(currentUserID),
	})
}

// UnfollowUser unfollows a user by username. No notification is emitted.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	target, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if currentUserID == target.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot unfollow yourself")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, target.ID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, "You are not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "You have unfollowed " + target.Username,
		"counts":  h.followCounts(currentUserID),
	})
}

// GetFollowing returns the full set of accounts the requester follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.followRepository.GetFollowing(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"following": users,
		"count":     len(users),
	})
}

// GetFollowers returns the full set of accounts following the requester
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.followRepository.GetFollowers(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"followers": users,
		"count":     len(users),
	})
}
