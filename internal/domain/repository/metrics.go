package repository

// NopMetrics discards every observation. Used when metrics are disabled and
// by tests.
type NopMetrics struct{}

func (NopMetrics) RecordProviderRequest(provider, outcome string) {}
func (NopMetrics) RecordResolution(source string)                 {}
func (NopMetrics) RecordError(kind string)                        {}
func (NopMetrics) RecordLastPrice(symbol string, price float64)   {}
func (NopMetrics) RecordLatency(op string, seconds float64)       {}
