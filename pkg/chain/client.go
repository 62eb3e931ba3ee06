// Package chain wraps the connection to an Ethereum execution node and
// provides EIP-55 address normalization.
package chain

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const dialTimeout = 10 * time.Second

// Senders repeat heavily across transaction pages, so a small cache covers
// the full working set of operators.
const checksumCacheSize = 8192

type Client struct {
	endpoint string
	eth      *ethclient.Client
	logger   *zap.Logger

	checksums *lru.Cache
}

// Dial connects to the Ethereum node at `endpoint` and verifies it is alive
// with a `ChainID` probe. An unreachable node is an error for the caller to
// treat as fatal.
func Dial(ctx context.Context, endpoint string, zapLogger *zap.Logger) (*Client, error) {
	logger := zapLogger.Sugar()

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	eth, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "could not connect to Ethereum node at %s", endpoint)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "Ethereum node at %s failed liveness probe", endpoint)
	}

	checksums, err := lru.New(checksumCacheSize)
	if err != nil {
		return nil, err
	}

	logger.Infof("connected to Ethereum node at %s (chain %s)", endpoint, chainID)

	return &Client{
		endpoint:  endpoint,
		eth:       eth,
		logger:    zapLogger,
		checksums: checksums,
	}, nil
}

// ChecksumAddress normalizes `address` to its EIP-55 checksummed form.
func ChecksumAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", errors.Errorf("%q is not a hex address", address)
	}
	return common.HexToAddress(address).Hex(), nil
}

// ChecksumAddress normalizes `address` through the client's cache.
func (c *Client) ChecksumAddress(address string) (string, error) {
	if cached, ok := c.checksums.Get(address); ok {
		return cached.(string), nil
	}

	checksummed, err := ChecksumAddress(address)
	if err != nil {
		return "", err
	}
	c.checksums.Add(address, checksummed)
	return checksummed, nil
}
