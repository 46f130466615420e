package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// UserBehavior is one row per (user, symbol) pair. It is incremented by the
// tracking endpoints on every view/search event and read by the
// recommendation engine.
type UserBehavior struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Symbol        string    `gorm:"column:symbol;size:20;not null;index" json:"symbol"`
	ViewCount     int       `gorm:"column:view_count;not null;default:0" json:"view_count"`
	SearchCount   int       `gorm:"column:search_count;not null;default:0" json:"search_count"`
	TotalViewTime int64     `gorm:"column:total_view_time;not null;default:0" json:"total_view_time"` // milliseconds
	Market        string    `gorm:"column:market;size:8" json:"market"`
	LastViewedAt  time.Time `gorm:"column:last_viewed_at" json:"last_viewed_at"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserBehavior) TableName() string {
	return "user_behavior"
}

// Validate enforces the numeric invariants on a behavior row.
func (b UserBehavior) Validate() error {
	if b.Symbol == "" {
		return errors.New("symbol is required")
	}
	if b.ViewCount < 0 {
		return errors.New("view_count must be non-negative")
	}
	if b.SearchCount < 0 {
		return errors.New("search_count must be non-negative")
	}
	if b.TotalViewTime < 0 {
		return errors.New("total_view_time must be non-negative")
	}
	if b.LastViewedAt.After(time.Now().Add(time.Minute)) {
		return errors.New("last_viewed_at must not be in the future")
	}
	return nil
}

// UserInteraction is a free-form tracked event (click, chart toggle, chat
// open, ...) with an arbitrary JSON context.
type UserInteraction struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	Symbol    string            `gorm:"column:symbol;size:20" json:"symbol"`
	EventType string            `gorm:"column:event_type;not null" json:"event_type"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserInteraction) TableName() string {
	return "user_interactions"
}
