package advisor

import "regexp"

var (
	usSymbolPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)
	twSymbolPattern = regexp.MustCompile(`\b\d{4}\b`)
)

// Common all-caps finance terms that match the US ticker shape but are not
// symbols.
var symbolStopWords = map[string]struct{}{
	"AI": {}, "PE": {}, "PB": {}, "ROE": {}, "ROA": {}, "EPS": {},
	"RSI": {}, "MACD": {}, "KD": {}, "MA": {}, "ETF": {}, "IPO": {},
	"CEO": {}, "CFO": {}, "CTO": {}, "USD": {}, "TWD": {}, "VS": {},
}

const maxDetectedSymbols = 3

// DetectStockSymbols pulls candidate tickers out of a free-form chat
// message: 1-5 uppercase letters for US, bare 4-digit codes for Taiwan
// (returned with the .TW suffix). Capped at three so one message cannot
// fan out into a pile of quote lookups.
func DetectStockSymbols(message string) []string {
	detected := make([]string, 0, maxDetectedSymbols)
	seen := make(map[string]struct{})

	for _, match := range usSymbolPattern.FindAllString(message, -1) {
		if _, stop := symbolStopWords[match]; stop {
			continue
		}
		if _, dup := seen[match]; dup {
			continue
		}
		seen[match] = struct{}{}
		detected = append(detected, match)
	}

	for _, match := range twSymbolPattern.FindAllString(message, -1) {
		symbol := match + ".TW"
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		detected = append(detected, symbol)
	}

	if len(detected) > maxDetectedSymbols {
		detected = detected[:maxDetectedSymbols]
	}
	return detected
}
