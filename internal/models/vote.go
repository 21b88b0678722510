package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SingleChoiceSlot is stored in Vote.Slot for polls without AllowMultiple, so
// the (user, poll, slot) unique index allows one ballot per user. Multi-choice
// polls store the option id instead, allowing one vote per option.
const SingleChoiceSlot = "single"

type Vote struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_votes_ballot,priority:1;uniqueIndex:idx_votes_choice,priority:1" json:"userId"`
	User      *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PollID    string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_votes_ballot,priority:2;uniqueIndex:idx_votes_choice,priority:2" json:"pollId"`
	Poll      *Poll     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	OptionID  string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_votes_choice,priority:3" json:"optionId"`
	Option    *Option   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Slot      string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_votes_ballot,priority:3" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// BallotSlot returns the slot value a vote for optionID takes on poll.
func BallotSlot(poll *Poll, optionID string) string {
	if poll.AllowMultiple {
		return optionID
	}
	return SingleChoiceSlot
}
