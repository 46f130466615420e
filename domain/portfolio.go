package domain

import "time"

// Portfolio is one holding. Prices are stored in cents to keep the rows
// integer-only; money math happens in the portfolio service.
type Portfolio struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Symbol             string    `gorm:"column:symbol;size:20;not null;index" json:"symbol"`
	CompanyName        string    `gorm:"column:company_name" json:"company_name"`
	Shares             int       `gorm:"column:shares;not null" json:"shares"`
	PurchasePriceCents int64     `gorm:"column:purchase_price_cents;not null" json:"purchase_price_cents"`
	PurchaseDate       time.Time `gorm:"column:purchase_date;not null" json:"purchase_date"`
	Notes              string    `gorm:"column:notes" json:"notes"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Portfolio) TableName() string {
	return "portfolio"
}
