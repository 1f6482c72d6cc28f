package usecase

import (
	"strings"

	"StockScout/internal/domain/models"
)

// ParseTimeframe derives the lookback window from query phrasing. It is a
// total function: anything unrecognized falls back to a single day.
func ParseTimeframe(query string) models.Timeframe {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "7 days") || strings.Contains(q, "last week"):
		return models.Timeframe{Days: 7, Label: "7 days"}
	case strings.Contains(q, "today") || strings.Contains(q, "last day") || strings.Contains(q, "yesterday"):
		return models.Timeframe{Days: 1, Label: "1 day"}
	default:
		return models.Timeframe{Days: 1, Label: "1 day"}
	}
}
