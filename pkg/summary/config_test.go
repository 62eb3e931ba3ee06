package summary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEnvRequiresApiKey(t *testing.T) {
	t.Setenv("ETHERSCAN_API_KEY", "")

	config := DefaultConfig()
	require.Error(t, config.ApplyEnv())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ETHERSCAN_API_KEY", "secret")
	t.Setenv("ETH_CLIENT_URL", "")

	config := DefaultConfig()
	require.NoError(t, config.ApplyEnv())
	require.Equal(t, "secret", config.Etherscan.ApiKey)
	require.Equal(t, DefaultEthEndpoint, config.Eth.Endpoint)

	t.Setenv("ETH_CLIENT_URL", "http://geth.internal:8545")
	require.NoError(t, config.ApplyEnv())
	require.Equal(t, "http://geth.internal:8545", config.Eth.Endpoint)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.Equal(t, DefaultMulticallAddress, config.Protocol.MulticallAddress)
	require.Equal(t, DefaultVaultAddress, config.Protocol.VaultAddress)
	require.Equal(t, 1000, config.Etherscan.PageSize)
	require.Nil(t, config.Api)
}
