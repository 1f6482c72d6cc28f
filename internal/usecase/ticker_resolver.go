package usecase

import (
	"context"
	"regexp"
	"strings"

	drepo "StockScout/internal/domain/repository"
	"StockScout/pkg/logger"
)

// tokenPattern matches alphabetic runs of 1-10 characters on the lowercased query.
var tokenPattern = regexp.MustCompile(`\b[a-z]{1,10}\b`)

// DefaultAliases maps common company names and brands to ticker symbols.
// Checked before any remote lookup.
var DefaultAliases = map[string]string{
	"google":    "GOOGL",
	"alphabet":  "GOOGL",
	"apple":     "AAPL",
	"microsoft": "MSFT",
	"amazon":    "AMZN",
	"facebook":  "META",
	"meta":      "META",
	"tesla":     "TSLA",
	"nvidia":    "NVDA",
	"palantir":  "PLTR",
}

// TickerResolver maps free-text queries to canonical ticker symbols: the
// static alias table first, then the symbol-search provider per token.
type TickerResolver struct {
	aliases map[string]string
	search  drepo.SymbolSearcher
	metrics drepo.Metrics
	logger  *logger.Logger
}

func NewTickerResolver(search drepo.SymbolSearcher, metrics drepo.Metrics, l *logger.Logger) *TickerResolver {
	return &TickerResolver{
		aliases: DefaultAliases,
		search:  search,
		metrics: metrics,
		logger:  l,
	}
}

// WithAliases overrides the alias table. Used by tests.
func (r *TickerResolver) WithAliases(aliases map[string]string) *TickerResolver {
	r.aliases = aliases
	return r
}

// Resolve returns the first symbol any token maps to. Tokens are tried in
// order of appearance; an alias hit wins immediately, a failed remote lookup
// only skips the token. No match at all fails with UnresolvedTickerError.
func (r *TickerResolver) Resolve(ctx context.Context, query string) (string, error) {
	tokens := tokenPattern.FindAllString(strings.ToLower(query), -1)

	for _, token := range tokens {
		if symbol, ok := r.aliases[token]; ok {
			r.metrics.RecordResolution("alias")
			return symbol, nil
		}

		matches, err := r.search.Search(ctx, token)
		if err != nil {
			// Soft failure: a broken search service must not mask an alias
			// hit on a later token.
			r.metrics.RecordProviderRequest("symbol_search", "error")
			r.logger.Warn("symbol search failed, skipping token",
				logger.String("token", token), logger.Error(err))
			continue
		}
		r.metrics.RecordProviderRequest("symbol_search", "ok")

		for _, m := range matches {
			if strings.Contains(strings.ToLower(m.Name), token) {
				r.metrics.RecordResolution("search")
				return m.Symbol, nil
			}
		}
	}

	return "", &drepo.UnresolvedTickerError{Query: query}
}
