// Package analysis folds filtered transactions into per-operator success
// counts and derives the validator distribution from them.
package analysis

import (
	"github.com/nodeset-org/validator-summary/pkg/etherscan"
	"github.com/nodeset-org/validator-summary/pkg/filter"
	"go.uber.org/zap"
)

// Normalizer produces the canonical checksummed form of an address. Satisfied
// by *chain.Client.
type Normalizer interface {
	ChecksumAddress(address string) (string, error)
}

// OperatorStats accumulates per-operator call counts. Relevant counts every
// matching call; Successful only those that did not revert.
type OperatorStats struct {
	Successful uint `json:"successful"`
	Relevant   uint `json:"relevant"`
}

type Aggregator struct {
	logger     *zap.Logger
	normalizer Normalizer
	filter     filter.Filter
}

func NewAggregator(zapLogger *zap.Logger, normalizer Normalizer, f filter.Filter) *Aggregator {
	return &Aggregator{
		logger:     zapLogger,
		normalizer: normalizer,
		filter:     f,
	}
}

// Aggregate performs the single stateful fold over the transaction history.
// Operators are keyed by checksummed sender address and created on first
// sighting; a reverted call never increments the success count. The fold is
// pure over its input, so repeated calls yield identical summaries.
func (a *Aggregator) Aggregate(transactions []etherscan.Transaction) *Summary {
	logger := a.logger.Sugar()

	stats := make(map[string]*OperatorStats)
	for i := range transactions {
		tx := &transactions[i]
		if !a.filter.Matches(tx) {
			continue
		}

		operator, err := a.normalizer.ChecksumAddress(tx.From)
		if err != nil {
			logger.Warnw("skipping transaction with malformed sender", "hash", tx.Hash, "error", err)
			continue
		}

		logger.Infow("found NodeSet aggregate transaction", "operator", operator, "hash", tx.Hash)

		operatorStats, ok := stats[operator]
		if !ok {
			operatorStats = &OperatorStats{}
			stats[operator] = operatorStats
		}
		operatorStats.Relevant++
		if !tx.Failed() {
			operatorStats.Successful++
		}
	}

	return newSummary(stats)
}
