// Package filter classifies raw transactions as NodeSet-related Multicall3
// aggregate calls.
package filter

import (
	"strings"

	"github.com/nodeset-org/validator-summary/pkg/etherscan"
)

// AggregateSelector is the 4-byte function selector of Multicall3's
// `aggregate((address,bytes)[])` method.
const AggregateSelector = "0x252dba42"

type Filter interface {
	Matches(tx *etherscan.Transaction) bool
}

// VaultFilter matches aggregate calls whose payload references the configured
// vault address. The reference check is a plain substring match over the hex
// payload, not an ABI decode: a payload that contains the vault's hex digits
// by coincidence still matches.
type VaultFilter struct {
	vaultHex string // address digits without the 0x prefix, lowercased
}

var _ Filter = (*VaultFilter)(nil)

func NewVaultFilter(vaultAddress string) *VaultFilter {
	return &VaultFilter{
		vaultHex: strings.ToLower(strings.TrimPrefix(vaultAddress, "0x")),
	}
}

// IsAggregateCall reports whether the transaction invokes the `aggregate`
// method, judged by the leading 4 bytes of the input payload.
func IsAggregateCall(tx *etherscan.Transaction) bool {
	if len(tx.Input) < len(AggregateSelector) {
		return false
	}
	return strings.EqualFold(tx.Input[:len(AggregateSelector)], AggregateSelector)
}

// ReferencesVault reports whether the payload mentions the vault address.
func (f *VaultFilter) ReferencesVault(tx *etherscan.Transaction) bool {
	return strings.Contains(strings.ToLower(tx.Input), f.vaultHex)
}

func (f *VaultFilter) Matches(tx *etherscan.Transaction) bool {
	return IsAggregateCall(tx) && f.ReferencesVault(tx)
}
