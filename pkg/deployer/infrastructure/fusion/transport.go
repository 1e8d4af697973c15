package fusion

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	RPS   float64       // Requests per second, 0 disables limiting
	Burst int           // Burst count
	Wait  time.Duration // Maximum wait time for a request
}

// NewHTTPClient returns a client that sends the api key as a bearer token
// and respects the configured request rate.
func NewHTTPClient(ctx context.Context, apiKey string, limits RateLimiterConfig) *http.Client {
	base := &http.Client{
		Transport: RateLimitedRoundTripper(http.DefaultTransport, limits),
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey}))
}

func RateLimitedRoundTripper(rt http.RoundTripper, config RateLimiterConfig) http.RoundTripper {
	if config.RPS <= 0 {
		return rt
	}
	burst := config.Burst
	if burst < 1 {
		burst = 1
	}
	return &roundTripRateLimiter{
		wait:      config.Wait,
		limiter:   rate.NewLimiter(rate.Limit(config.RPS), burst),
		transport: rt,
	}
}

type roundTripRateLimiter struct {
	wait      time.Duration
	limiter   *rate.Limiter
	transport http.RoundTripper
}

func (rl *roundTripRateLimiter) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()
	if rl.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rl.wait)
		defer cancel()
	}
	// Wait errors out early if the request cannot be sent before the
	// deadline.
	if err := rl.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return rl.transport.RoundTrip(r)
}
