// Package etherscan retrieves the complete transaction history of a contract
// from the Etherscan account API, one page at a time.
package etherscan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"github.com/nodeset-org/validator-summary/pkg/metrics"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultApiUrl        = "https://api.etherscan.io/api"
	DefaultPageSize      = 1000
	DefaultRetryAttempts = uint(3)
	DefaultRetryDelay    = 2 * time.Second

	requestTimeout = 10 * time.Second
)

// ErrRateLimited marks an HTTP 429 from the API. It is the only failure the
// fetcher retries; everything else ends pagination.
var ErrRateLimited = errors.New("rate limited by Etherscan")

type Config struct {
	ApiUrl        string        `yaml:"api_url"`
	ApiKey        string        `yaml:"-"`
	PageSize      int           `yaml:"page_size"`
	RetryAttempts uint          `yaml:"retry_attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
}

type Client struct {
	apiUrl        string
	apiKey        string
	pageSize      int
	retryAttempts uint
	retryDelay    time.Duration

	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(config *Config, zapLogger *zap.Logger) *Client {
	client := &Client{
		apiUrl:        config.ApiUrl,
		apiKey:        config.ApiKey,
		pageSize:      config.PageSize,
		retryAttempts: config.RetryAttempts,
		retryDelay:    config.RetryDelay,
		httpClient:    &http.Client{Timeout: requestTimeout},
		logger:        zapLogger,
	}
	if client.apiUrl == "" {
		client.apiUrl = DefaultApiUrl
	}
	if client.pageSize == 0 {
		client.pageSize = DefaultPageSize
	}
	if client.retryAttempts == 0 {
		client.retryAttempts = DefaultRetryAttempts
	}
	if client.retryDelay == 0 {
		client.retryDelay = DefaultRetryDelay
	}
	return client
}

// FetchTransactions retrieves all transactions sent to `address`, newest
// first. Pages are requested sequentially starting at page 1; a rate-limited
// page is retried with doubling backoff, any other failure ends pagination.
// The accumulated records are returned in every case, so a partial history
// is a normal outcome rather than an error.
func (c *Client) FetchTransactions(ctx context.Context, address string) []Transaction {
	logger := c.logger.Sugar()

	var all []Transaction
	for page := 1; ; page++ {
		var transactions []Transaction
		var exhausted bool
		err := retry.Do(
			func() error {
				var err error
				transactions, exhausted, err = c.fetchPage(ctx, address, page)
				return err
			},
			retry.Attempts(c.retryAttempts),
			retry.Delay(c.retryDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.RetryIf(func(err error) bool { return errors.Is(err, ErrRateLimited) }),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			logger.Errorw("could not fetch transactions, keeping what was retrieved", "page", page, "error", err)
			return all
		}
		if exhausted {
			return all
		}

		all = append(all, transactions...)
		metrics.PagesFetched.Inc()
		metrics.TransactionsFetched.Add(float64(len(transactions)))
		logger.Infof("fetched %d transactions on page %d", len(transactions), page)

		if len(transactions) < c.pageSize {
			return all
		}
	}
}

// fetchPage requests a single page of the `txlist` action. The second return
// value is true when the API signals there is no further data.
func (c *Client) fetchPage(ctx context.Context, address string, page int) ([]Transaction, bool, error) {
	logger := c.logger.Sugar()

	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "txlist")
	params.Set("address", address)
	params.Set("startblock", "0")
	params.Set("endblock", "99999999")
	params.Set("page", strconv.Itoa(page))
	params.Set("offset", strconv.Itoa(c.pageSize))
	params.Set("sort", "desc")
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiUrl+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, errors.Wrapf(err, "request for page %d failed", page)
	}
	defer resp.Body.Close()
	metrics.RequestDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.RateLimitHits.Inc()
		logger.Warnw("rate limited", "page", page, "backoff", c.retryDelay)
		return nil, false, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, errors.Errorf("unexpected status %d on page %d", resp.StatusCode, page)
	}

	var body txlistResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, errors.Wrapf(err, "invalid JSON response on page %d", page)
	}
	if body.Status == "0" {
		logger.Warnf("no more transactions or API limit reached on page %d: %s", page, body.Message)
		return nil, true, nil
	}

	var transactions []Transaction
	if err := json.Unmarshal(body.Result, &transactions); err != nil {
		return nil, false, errors.Wrapf(err, "invalid result payload on page %d", page)
	}
	return transactions, false, nil
}
