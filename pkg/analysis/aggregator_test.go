package analysis

import (
	"testing"

	"github.com/nodeset-org/validator-summary/pkg/chain"
	"github.com/nodeset-org/validator-summary/pkg/etherscan"
	"github.com/nodeset-org/validator-summary/pkg/filter"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	vaultAddress    = "0xB266274F55e784689e97b7E363B0666d92e6305B"
	operatorA       = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	operatorB       = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	aggregatePrefix = "0x252dba42" + "b266274f55e784689e97b7e363b0666d92e6305b"
)

type eip55Normalizer struct{}

func (eip55Normalizer) ChecksumAddress(address string) (string, error) {
	return chain.ChecksumAddress(address)
}

func testAggregator() *Aggregator {
	return NewAggregator(zap.NewNop(), eip55Normalizer{}, filter.NewVaultFilter(vaultAddress))
}

func relevantTx(from string, isError string) etherscan.Transaction {
	return etherscan.Transaction{
		From:    from,
		Input:   aggregatePrefix,
		Hash:    "0xabc",
		IsError: isError,
	}
}

func TestAggregateHistogram(t *testing.T) {
	aggregator := testAggregator()

	// Sender casing varies across records; normalization folds them into
	// one operator.
	transactions := []etherscan.Transaction{
		relevantTx(operatorA, "0"),
		relevantTx("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "0"),
		relevantTx("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED", "0"),
		relevantTx(operatorB, "0"),
	}

	summary := aggregator.Aggregate(transactions)
	require.Equal(t, map[uint]uint{1: 1, 3: 1}, summary.Histogram)
	require.Equal(t, uint(2), summary.Operators)
	require.Equal(t, uint(4), summary.TotalValidators)
	require.Equal(t, uint(3), summary.MaxValidators)
	require.Equal(t, 0.75, summary.ConcentrationRatio)
}

func TestAggregateIgnoresFailedCalls(t *testing.T) {
	aggregator := testAggregator()

	transactions := []etherscan.Transaction{
		relevantTx(operatorA, "0"),
		relevantTx(operatorA, "1"),
		relevantTx(operatorB, "1"),
	}

	summary := aggregator.Aggregate(transactions)
	// Operator B only ever failed, so it sits in the zero bucket.
	require.Equal(t, map[uint]uint{0: 1, 1: 1}, summary.Histogram)
	require.Equal(t, uint(1), summary.TotalValidators)
	require.Equal(t, uint(1), summary.MaxValidators)
	require.Equal(t, 1.0, summary.ConcentrationRatio)
}

func TestAggregateExcludesNonAggregateCalls(t *testing.T) {
	aggregator := testAggregator()

	transactions := []etherscan.Transaction{
		// Vault referenced, wrong selector.
		{From: operatorA, Input: "0xbce38bd7b266274f55e784689e97b7e363b0666d92e6305b", IsError: "0"},
		// Right selector, no vault reference.
		{From: operatorA, Input: "0x252dba42deadbeef", IsError: "0"},
	}

	summary := aggregator.Aggregate(transactions)
	require.True(t, summary.Empty())
}

func TestAggregateEmptyInput(t *testing.T) {
	aggregator := testAggregator()

	summary := aggregator.Aggregate(nil)
	require.True(t, summary.Empty())
	require.Equal(t, uint(0), summary.TotalValidators)
	require.Equal(t, uint(0), summary.MaxValidators)
	// No ratio is computed for an empty run.
	require.Equal(t, 0.0, summary.ConcentrationRatio)
}

func TestAggregateIsIdempotent(t *testing.T) {
	aggregator := testAggregator()

	transactions := []etherscan.Transaction{
		relevantTx(operatorA, "0"),
		relevantTx(operatorA, "0"),
		relevantTx(operatorB, "1"),
	}

	first := aggregator.Aggregate(transactions)
	second := aggregator.Aggregate(transactions)
	require.Equal(t, first, second)
}

func TestAggregateSkipsMalformedSenders(t *testing.T) {
	aggregator := testAggregator()

	transactions := []etherscan.Transaction{
		relevantTx("GENESIS", "0"),
		relevantTx(operatorA, "0"),
	}

	summary := aggregator.Aggregate(transactions)
	require.Equal(t, uint(1), summary.Operators)
	require.Equal(t, uint(1), summary.TotalValidators)
}
