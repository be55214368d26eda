package webclient

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anvil-web/reqkit/pkg/catalog"
)

const (
	defaultTimeout     = 20 * time.Second
	defaultContentType = "application/json;charset=UTF-8"
	formContentType    = "multipart/form-data;charset=UTF-8"
)

// Options is the behavioral configuration for a Client. Every callback is
// optional; nil callbacks are simply never invoked.
type Options struct {
	// Tip enables rendering of error tips through TipFunc. Tips fire only
	// when Tip is true AND TipFunc is non-nil.
	Tip     bool
	TipFunc func(msg string)

	// ErrorHandlers maps a business or HTTP status code (as a string) to a
	// side-effecting handler invoked when a failure with that code occurs.
	ErrorHandlers map[string]func()

	// Lang selects the active catalog language. Must be a language the
	// catalog carries; empty selects the catalog fallback.
	Lang string

	// LoadingStart and LoadingStop mark the loading-indicator lifecycle for
	// calls made with WithLoading.
	LoadingStart func()
	LoadingStop  func()

	// ResponseStatus, ResponseMessage and ResponseData extract the business
	// envelope fields from the raw body. Defaults read the gjson paths
	// "status", "message" and "data".
	ResponseStatus  Accessor
	ResponseMessage Accessor
	ResponseData    DataAccessor

	// Online is the connectivity probe consulted when a server error
	// response arrives. Defaults to always online.
	Online func() bool

	// Catalog overrides the built-in message table.
	Catalog *catalog.Catalog

	// Logger receives request lifecycle logs. Optional.
	Logger *zap.SugaredLogger
}

// Transport holds the merged transport configuration applied to the
// underlying client. User values override defaults key-by-key.
type Transport struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

// mergeTransport layers user overrides over the built-in defaults. The
// header merge is shallow: each user key replaces the default key.
func mergeTransport(overrides ...Transport) Transport {
	merged := Transport{
		Timeout: defaultTimeout,
		Headers: map[string]string{"Content-Type": defaultContentType},
	}
	for _, o := range overrides {
		if o.BaseURL != "" {
			merged.BaseURL = o.BaseURL
		}
		if o.Timeout > 0 {
			merged.Timeout = o.Timeout
		}
		for k, v := range o.Headers {
			merged.Headers[k] = v
		}
	}
	return merged
}

// callOptions travels with a single request and is discarded once the
// request settles.
type callOptions struct {
	loading bool
}

// CallOption customizes a single request.
type CallOption func(*callOptions)

// WithLoading marks the request as one that should drive the loading
// indicator callbacks.
func WithLoading() CallOption {
	return func(o *callOptions) { o.loading = true }
}

type loadingCtxKey struct{}

func withLoadingFlag(ctx context.Context, loading bool) context.Context {
	if !loading {
		return ctx
	}
	return context.WithValue(ctx, loadingCtxKey{}, true)
}

func loadingFlag(ctx context.Context) bool {
	flag, _ := ctx.Value(loadingCtxKey{}).(bool)
	return flag
}
