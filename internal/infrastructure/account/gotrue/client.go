package gotrue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	basecache "github.com/ShubhamShuklaX/Tournify/internal/platform/cache"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/resilience"
	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultUserPath = "/auth/v1/user"
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = time.Minute
	maxResponseSize = 1 << 20
)

var errGoTrueTransient = crerr.New("gotrue transient failure")

type ClientConfig struct {
	BaseURL        string
	UserPath       string
	APIKey         string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client verifies access tokens against the auth server's user endpoint.
type Client struct {
	http    *fasthttp.Client
	userURL string
	apiKey  string
	timeout time.Duration
	cache   *basecache.Store
	flight  singleflight.Group
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	userPath := strings.TrimSpace(cfg.UserPath)
	if userPath == "" {
		userPath = defaultUserPath
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "tournify-auth",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseSize,
		},
		userURL: buildURL(cfg.BaseURL, userPath),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		timeout: timeout,
		cache:   basecache.NewStore(cacheTTL),
		breaker: resilience.NewCircuitBreaker("auth", cfg.CircuitBreaker, logger),
		logger:  logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	key := hashToken(token)
	if cached, ok := c.cache.Get(ctx, key); ok {
		if principal, ok := cached.(user.Principal); ok {
			return principal, nil
		}
	}

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "auth circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: auth provider is temporarily unavailable: %w", usecase.ErrDependencyUnavailable, err)
	}

	// Callers sharing one flight each hold an admission, so each reports.
	out, err, _ := c.flight.Do(key, func() (any, error) {
		principal, reqErr := c.fetchUser(ctx, token)
		if reqErr != nil {
			return nil, reqErr
		}
		c.cache.Set(ctx, key, principal)
		return principal, nil
	})
	c.breaker.Done(isCircuitFailure(err))
	if err != nil {
		if isCircuitFailure(err) {
			c.logger.WarnContext(ctx, "auth provider request failed", "url", c.userURL, "error", err)
			return user.Principal{}, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, err
	}

	principal, _ := out.(user.Principal)
	return principal, nil
}

func (c *Client) fetchUser(ctx context.Context, token string) (user.Principal, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.userURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return user.Principal{}, crerr.Wrapf(errGoTrueTransient, "send user request: %v", err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return user.Principal{}, fmt.Errorf("%w: token rejected by auth provider", usecase.ErrUnauthorized)
	case status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError:
		return user.Principal{}, crerr.Wrapf(errGoTrueTransient, "auth provider status=%d", status)
	case status != fasthttp.StatusOK:
		return user.Principal{}, crerr.Newf("auth provider status=%d", status)
	}

	var decoded userResponse
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "decode user response")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, crerr.New("invalid user response: id is empty")
	}

	return user.Principal{
		UserID: decoded.ID,
		Email:  decoded.Email,
		Role:   roleFromMetadata(decoded.AppMetadata, decoded.UserMetadata),
	}, nil
}

type userResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}
