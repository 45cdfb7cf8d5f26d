package models

import "time"

const (
	ChallengePending    = "pending"
	ChallengeInProgress = "in_progress"
	ChallengeCompleted  = "completed"
	ChallengeClaimed    = "claimed"
)

// UserChallenge tracks one user's progress on one challenge. LastEventAt
// carries the date of the most recent qualifying event so automatic counters
// credit at most once per calendar day.
type UserChallenge struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;uniqueIndex:idx_user_challenge" json:"user_id"`
	ChallengeID  uint       `gorm:"not null;uniqueIndex:idx_user_challenge" json:"challenge_id"`
	Status       string     `gorm:"type:enum('pending','in_progress','completed','claimed');not null;default:'pending'" json:"status"`
	CurrentValue int64      `gorm:"not null;default:0" json:"current_value"`
	Progress     int        `gorm:"not null;default:0" json:"progress"`
	Proof        *string    `gorm:"type:text" json:"proof,omitempty"`
	ProofImage   *string    `gorm:"type:varchar(255)" json:"proof_image,omitempty"`
	LastEventAt  *time.Time `json:"last_event_at,omitempty"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Challenge *Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserChallenge) TableName() string {
	return "user_challenges"
}
