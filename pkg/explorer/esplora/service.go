package esplora

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/sony/gobreaker"
	"github.com/walletkit/trezor-composer/pkg/circuitbreaker"
	"github.com/walletkit/trezor-composer/pkg/explorer"
	"github.com/walletkit/trezor-composer/pkg/httputil"
	"github.com/walletkit/trezor-composer/pkg/stats"
	"go.uber.org/ratelimit"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params must not be null")
	// ErrMissingURL ...
	ErrMissingURL = errors.New("explorer url must not be empty")
)

// Opts defines the optional parameters of the esplora service.
// A zero RequestsPerSecond means no rate limit.
type Opts struct {
	RequestsPerSecond int
	RequestTimeout    time.Duration
}

type esplora struct {
	apiURL  string
	network *chaincfg.Params
	client  *httputil.Client
	limiter ratelimit.Limiter
	cb      *gobreaker.CircuitBreaker
}

// NewService returns a new esplora service as an explorer.Service interface
func NewService(
	apiURL string, network *chaincfg.Params, opts Opts,
) (explorer.Service, error) {
	if len(apiURL) <= 0 {
		return nil, ErrMissingURL
	}
	if network == nil {
		return nil, ErrNullNetwork
	}

	limiter := ratelimit.NewUnlimited()
	if opts.RequestsPerSecond > 0 {
		limiter = ratelimit.New(opts.RequestsPerSecond)
	}

	service := &esplora{
		apiURL:  strings.TrimSuffix(apiURL, "/"),
		network: network,
		client:  httputil.NewClient(opts.RequestTimeout),
		limiter: limiter,
		cb:      circuitbreaker.NewCircuitBreaker("esplora"),
	}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (e *esplora) healthCheck() error {
	_, err := e.GetBlockHeight(context.Background())
	return err
}

// get performs a rate limited GET request to the given path through the
// circuit breaker. Endpoint is the label used for the request metrics.
// A 404 is returned as *responseError but doesn't count as a failure for
// the circuit breaker.
func (e *esplora) get(
	ctx context.Context, endpoint, path string,
) (string, error) {
	e.limiter.Take()
	defer stats.ObserveBackendRequest(endpoint, time.Now())

	res, err := e.cb.Execute(func() (interface{}, error) {
		url := fmt.Sprintf("%s%s", e.apiURL, path)
		status, body, err := e.client.NewHTTPRequest(
			ctx, http.MethodGet, url, "", nil,
		)
		if err != nil {
			return nil, err
		}
		resp := response{status, body}
		if status != http.StatusOK && status != http.StatusNotFound {
			return nil, resp.err()
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}

	resp := res.(response)
	if resp.status != http.StatusOK {
		return "", resp.err()
	}
	return resp.body, nil
}

type response struct {
	status int
	body   string
}

func (r response) err() error {
	return &responseError{r.status, strings.TrimSpace(r.body)}
}

type responseError struct {
	status int
	body   string
}

func (e *responseError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.status, http.StatusText(e.status), e.body)
}
