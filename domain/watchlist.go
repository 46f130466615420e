package domain

import "time"

// Watchlist is a stock the user favorited.
type Watchlist struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Symbol      string    `gorm:"column:symbol;size:20;not null;index" json:"symbol"`
	CompanyName string    `gorm:"column:company_name" json:"company_name"`
	AddedAt     time.Time `gorm:"column:added_at;autoCreateTime" json:"added_at"`
}

func (Watchlist) TableName() string {
	return "watchlist"
}
