package domain

import "time"

// SearchHistory records every symbol lookup. The popularity pool is an
// aggregate over this table.
type SearchHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Symbol      string    `gorm:"column:symbol;size:20;not null" json:"symbol"`
	CompanyName string    `gorm:"column:company_name" json:"company_name"`
	SearchedAt  time.Time `gorm:"column:searched_at;autoCreateTime;index" json:"searched_at"`
}

func (SearchHistory) TableName() string {
	return "search_history"
}
