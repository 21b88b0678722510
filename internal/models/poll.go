package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Poll struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Question      string    `gorm:"type:text;not null" json:"question"`
	UserID        string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	User          *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	IsPublished   bool      `gorm:"not null;index" json:"isPublished"`
	AllowMultiple bool      `gorm:"not null" json:"allowMultiple"` // fixed at creation
	ShowResults   bool      `gorm:"not null" json:"showResults"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (p *Poll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Option is one answer of a poll. Position keeps creation order stable when
// a batch of options shares the same timestamp.
type Option struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	PollID    string    `gorm:"type:varchar(36);not null;index" json:"pollId"`
	Poll      *Poll     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Position  int       `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Option) TableName() string {
	return "poll_options"
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// PollView is the poll shape sent to clients: the row plus its options and
// freshly computed stats.
type PollView struct {
	Poll
	Options []Option  `json:"options"`
	Stats   PollStats `json:"stats"`
}
