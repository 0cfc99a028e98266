package models

import "time"

// Notification verbs.
const (
	VerbFollow  = "follow"
	VerbLike    = "like"
	VerbComment = "comment"
)

// Target kinds for the tagged-union notification target. An empty kind means
// the notification carries no target (follow events).
const (
	TargetNone    = ""
	TargetPost    = "post"
	TargetComment = "comment"
)

// Notification is a denormalized event log entry keyed by recipient.
// The (TargetKind, TargetID) pair replaces a polymorphic foreign key with an
// explicit kind discriminant.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Verb        string    `json:"verb" gorm:"size:20;index"`
	TargetKind  string    `json:"target_kind,omitempty" gorm:"size:20"`
	TargetID    uint      `json:"target_id,omitempty"`
	Message     string    `json:"message"`
	Read        bool      `json:"read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Recipient User `json:"-" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	Actor     User `json:"-" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
}
