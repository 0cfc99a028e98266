package models

import "time"

// User rows are hard-deleted so that the follow/post/like/notification
// foreign keys can cascade.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;size:150"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	Password       string    `json:"-"` // Store hashed password, ignore for JSON serialization
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserCompact is the embedded author/actor representation used in list payloads.
type UserCompact struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// Profile is the full user payload with computed follow counts.
type Profile struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Bio            string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePicture string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}
