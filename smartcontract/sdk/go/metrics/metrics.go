package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSubmitted = "submitted"
	ResultFinalized = "finalized"
	ResultFailed    = "failed"

	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultCacheHit = "cache_hit"
	ResultError    = "error"
)

var (
	Transactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quarry_sdk_transactions_total", Help: "Transactions handled by the executor, by outcome.",
	}, []string{"result"})

	AccountFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quarry_sdk_account_fetches_total", Help: "Account reads by outcome.",
	}, []string{"result"})

	DecodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quarry_sdk_decode_errors_total", Help: "Account payloads that failed to decode, by expected kind.",
	}, []string{"kind"})
)
