// Package summary wires the fetch, filter and aggregation stages into the
// single sequential pass that produces the validator distribution.
package summary

import (
	"context"
	"io"
	"net/http"

	"github.com/nodeset-org/validator-summary/pkg/analysis"
	"github.com/nodeset-org/validator-summary/pkg/api"
	"github.com/nodeset-org/validator-summary/pkg/chain"
	"github.com/nodeset-org/validator-summary/pkg/etherscan"
	"github.com/nodeset-org/validator-summary/pkg/filter"
	"github.com/nodeset-org/validator-summary/pkg/output"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Summarizer struct {
	logger *zap.Logger
	config *Config

	chain   *chain.Client
	fetcher *etherscan.Client
	api     *api.Server
}

// New connects to the configured Ethereum node (a dead node is fatal, since
// address normalization and the rest of the run depend on it) and assembles
// the pipeline.
func New(ctx context.Context, config *Config, zapLogger *zap.Logger) (*Summarizer, error) {
	chainClient, err := chain.Dial(ctx, config.Eth.Endpoint, zapLogger)
	if err != nil {
		return nil, err
	}

	var apiServer *api.Server
	if config.Api != nil {
		apiServer = api.New(config.Api, zapLogger)
	}

	return &Summarizer{
		logger:  zapLogger,
		config:  config,
		chain:   chainClient,
		fetcher: etherscan.NewClient(config.Etherscan, zapLogger),
		api:     apiServer,
	}, nil
}

// Run fetches the Multicall3 transaction history, keeps the NodeSet aggregate
// calls, folds them into per-operator counts and writes the report to `w`.
// One request is in flight at a time; there is no concurrent fetching.
func (s *Summarizer) Run(ctx context.Context, w io.Writer) error {
	logger := s.logger.Sugar()

	multicall, err := s.chain.ChecksumAddress(s.config.Protocol.MulticallAddress)
	if err != nil {
		return errors.Wrap(err, "invalid multicall address")
	}
	vault, err := s.chain.ChecksumAddress(s.config.Protocol.VaultAddress)
	if err != nil {
		return errors.Wrap(err, "invalid vault address")
	}

	if s.api != nil {
		go func() {
			if err := s.api.Run(); err != nil && err != http.ErrServerClosed {
				logger.Warnf("error running API server: %v", err)
			}
		}()
	}

	transactions := s.fetcher.FetchTransactions(ctx, multicall)

	aggregator := analysis.NewAggregator(s.logger, s.chain, filter.NewVaultFilter(vault))
	result := aggregator.Aggregate(transactions)

	if result.Empty() {
		logger.Info("no NodeSet-related aggregate transactions found")
	} else {
		logger.Infow("validator summary generated",
			"operators", result.Operators,
			"total_validators", result.TotalValidators,
			"max_validators", result.MaxValidators,
		)
	}

	if s.api != nil {
		s.api.Publish(result)
	}

	return output.WriteReport(w, result)
}

func (s *Summarizer) Shutdown() error {
	if s.api == nil {
		return nil
	}
	return s.api.Shutdown()
}
