package domain

// Market identifies which exchange family a symbol trades on.
type Market string

const (
	MarketUS Market = "US"
	MarketTW Market = "TW"
)

// PopularStock is one entry of the global popularity pool, derived from
// search history aggregates (not persisted as-is).
type PopularStock struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"company_name"`
	SearchCount int    `json:"search_count"`
	Market      Market `json:"market"`
}

// StockMeta is the per-symbol metadata used for sector tallies. Rows may be
// missing for any symbol; consumers must tolerate that.
type StockMeta struct {
	Symbol      string `gorm:"column:symbol;size:20;primaryKey" json:"symbol"`
	CompanyName string `gorm:"column:company_name" json:"company_name"`
	Sector      string `gorm:"column:sector" json:"sector"`
	Market      Market `gorm:"column:market;size:8" json:"market"`
}

func (StockMeta) TableName() string {
	return "stock_meta"
}
