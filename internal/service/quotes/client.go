package quotes

import (
	"context"

	"resty.dev/v3"
)

// Limiter throttles calls per provider.
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

type noLimit struct{}

func (noLimit) Wait(context.Context, string) error { return nil }

// provider is the shared HTTP plumbing of every source.
type provider struct {
	name    string
	client  *resty.Client
	limiter Limiter
}

// newProvider creates a resty client for baseURL. The caller's context bounds
// each request, so no client-level timeout or retry is configured.
func newProvider(name, baseURL string, limiter Limiter) provider {
	if limiter == nil {
		limiter = noLimit{}
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; MoneyRoutine/1.0)")
	return provider{name: name, client: client, limiter: limiter}
}

// get waits for the provider's limiter, then issues the request and decodes a
// 2xx JSON body into out.
func (p provider) get(ctx context.Context, req *resty.Request, path string, out any) error {
	if err := p.limiter.Wait(ctx, p.name); err != nil {
		return classify(p.name, err)
	}

	resp, err := req.
		SetContext(ctx).
		SetResult(out).
		Get(path)
	if err != nil {
		return classify(p.name, err)
	}
	if !resp.IsSuccess() {
		return newStatusError(p.name, resp.StatusCode())
	}
	return nil
}
