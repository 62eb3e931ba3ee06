package summary

import (
	"os"

	"github.com/nodeset-org/validator-summary/pkg/api"
	"github.com/nodeset-org/validator-summary/pkg/etherscan"
	"github.com/pkg/errors"
)

const (
	// Multicall3 deployment, shared across chains.
	DefaultMulticallAddress = "0xcA11bde05977b3631167028862bE2a173976CA11"
	// NodeSet vault on mainnet.
	DefaultVaultAddress = "0xB266274F55e784689e97b7E363B0666d92e6305B"

	DefaultEthEndpoint = "http://localhost:8545"
)

type EthConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type ProtocolConfig struct {
	MulticallAddress string `yaml:"multicall_address"`
	VaultAddress     string `yaml:"vault_address"`
}

type LoggingConfig struct {
	Path string `yaml:"path"`
}

type Config struct {
	Eth       *EthConfig        `yaml:"eth"`
	Etherscan *etherscan.Config `yaml:"etherscan"`
	Protocol  *ProtocolConfig   `yaml:"protocol"`
	Api       *api.Config       `yaml:"api"`
	Logging   *LoggingConfig    `yaml:"logging"`
}

func DefaultConfig() *Config {
	return &Config{
		Eth: &EthConfig{Endpoint: DefaultEthEndpoint},
		Etherscan: &etherscan.Config{
			ApiUrl:        etherscan.DefaultApiUrl,
			PageSize:      etherscan.DefaultPageSize,
			RetryAttempts: etherscan.DefaultRetryAttempts,
			RetryDelay:    etherscan.DefaultRetryDelay,
		},
		Protocol: &ProtocolConfig{
			MulticallAddress: DefaultMulticallAddress,
			VaultAddress:     DefaultVaultAddress,
		},
	}
}

// ApplyEnv overlays environment variables on the file-based configuration.
// ETHERSCAN_API_KEY must be set before any network activity happens;
// ETH_CLIENT_URL is optional.
func (c *Config) ApplyEnv() error {
	apiKey := os.Getenv("ETHERSCAN_API_KEY")
	if apiKey == "" {
		return errors.New("ETHERSCAN_API_KEY environment variable is required")
	}
	c.Etherscan.ApiKey = apiKey

	if endpoint := os.Getenv("ETH_CLIENT_URL"); endpoint != "" {
		c.Eth.Endpoint = endpoint
	}
	return nil
}
