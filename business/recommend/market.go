package recommend

import (
	"strings"

	"stockpulse/domain"
)

// ClassifyMarket maps a symbol to its market by shape: a ".TW"/".TWO"
// suffix or a bare 4-digit code is Taiwan, everything else is treated as a
// US ticker. Symbols outside both shapes (crypto pairs, indices) also land
// in US, mirroring how the rest of the platform treats unknown symbols.
func ClassifyMarket(symbol string) domain.Market {
	if strings.HasSuffix(symbol, ".TW") || strings.HasSuffix(symbol, ".TWO") {
		return domain.MarketTW
	}
	if isBareTWCode(symbol) {
		return domain.MarketTW
	}
	return domain.MarketUS
}

func isBareTWCode(symbol string) bool {
	if len(symbol) != 4 {
		return false
	}
	for _, r := range symbol {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
