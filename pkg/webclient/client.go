// Package webclient wraps a resty HTTP client with standardized response
// handling: business envelope interpretation, localized error messages and
// loading-indicator lifecycle callbacks.
package webclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/anvil-web/reqkit/pkg/catalog"
)

// businessOK is the business status that marks a transport-successful
// response as an application-level success, compared as a string.
const businessOK = "0"

// Client owns one configured resty instance and interprets every response
// through the injected envelope accessors.
type Client struct {
	service *resty.Client

	tip      bool
	tipFn    func(string)
	handlers map[string]func()

	lang    string
	catalog *catalog.Catalog

	loadingStart func()
	loadingStop  func()

	status  Accessor
	message Accessor
	data    DataAccessor

	online func() bool
	log    *zap.SugaredLogger
}

// New builds a Client from behavioral options and transport overrides merged
// over the defaults (20s timeout, JSON content type).
func New(opts Options, transport ...Transport) (*Client, error) {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Builtin()
	}
	lang := opts.Lang
	if lang == "" {
		lang = catalog.FallbackLang
	}
	if !cat.Has(lang) {
		return nil, fmt.Errorf("catalog has no language %q (have %v)", lang, cat.Languages())
	}

	tc := mergeTransport(transport...)
	service := resty.New().
		SetTimeout(tc.Timeout).
		SetHeaders(tc.Headers)
	if tc.BaseURL != "" {
		service.SetBaseURL(tc.BaseURL)
	}

	c := &Client{
		service: service,
		// The tip gate is decided once here, not re-checked per error.
		tip:          opts.Tip && opts.TipFunc != nil,
		tipFn:        opts.TipFunc,
		handlers:     opts.ErrorHandlers,
		lang:         lang,
		catalog:      cat,
		loadingStart: opts.LoadingStart,
		loadingStop:  opts.LoadingStop,
		status:       opts.ResponseStatus,
		message:      opts.ResponseMessage,
		data:         opts.ResponseData,
		online:       opts.Online,
		log:          opts.Logger,
	}
	if c.status == nil {
		c.status = defaultStatusAccessor
	}
	if c.message == nil {
		c.message = defaultMessageAccessor
	}
	if c.data == nil {
		c.data = defaultDataAccessor
	}
	if c.online == nil {
		c.online = func() bool { return true }
	}

	service.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if loadingFlag(req.Context()) && c.loadingStart != nil {
			c.loadingStart()
		}
		return nil
	})
	// OnAfterResponse covers every completed exchange (2xx or not);
	// OnError covers transport failures. Exactly one of the two fires,
	// so loading stops exactly once per request.
	service.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.stopLoading(resp.Request.Context())
		return nil
	})
	service.OnError(func(req *resty.Request, _ error) {
		c.stopLoading(req.Context())
	})

	return c, nil
}

func (c *Client) stopLoading(ctx context.Context) {
	if loadingFlag(ctx) && c.loadingStop != nil {
		c.loadingStop()
	}
}

// Get issues a GET with params as query parameters.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, opts ...CallOption) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, params, nil, opts...)
}

// Post issues a POST with body as the request body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...CallOption) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, opts...)
}

// Put issues a PUT with body as the request body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...CallOption) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, opts...)
}

// Delete issues a DELETE with body as the request body.
func (c *Client) Delete(ctx context.Context, path string, body any, opts ...CallOption) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, body, opts...)
}

// PostForm submits fields as a form upload. It talks to the underlying
// client directly with a hardcoded method and content type instead of going
// through do.
func (c *Client) PostForm(ctx context.Context, path string, fields url.Values, opts ...CallOption) ([]byte, error) {
	var call callOptions
	for _, o := range opts {
		o(&call)
	}

	resp, err := c.service.R().
		SetContext(withLoadingFlag(ctx, call.loading)).
		SetHeader("Content-Type", formContentType).
		SetBody(fields.Encode()).
		Post(path)
	return c.settle(resp, err)
}

// do is the single dispatch path for the verb helpers. It forwards to the
// underlying client and surfaces the interpreted outcome unchanged.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body any, opts ...CallOption) ([]byte, error) {
	var call callOptions
	for _, o := range opts {
		o(&call)
	}

	req := c.service.R().SetContext(withLoadingFlag(ctx, call.loading))
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	return c.settle(resp, err)
}

// settle turns the raw transport outcome into the caller's outcome.
//
// The transport-failure branches also return an error to the caller; the
// original contract only fired the tip and left the outcome unsettled,
// which a Go method cannot reasonably do (see DESIGN.md).
func (c *Client) settle(resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, c.failTransport(err)
	}
	if resp.IsError() {
		return nil, c.failHTTP(resp)
	}
	return c.unwrap(resp.Body())
}

// unwrap handles transport-level success: extract the business envelope and
// resolve or fail on the embedded status.
func (c *Client) unwrap(body []byte) ([]byte, error) {
	if len(body) == 0 {
		return nil, nil
	}

	status := c.status(body)
	msg := c.message(body)
	if msg == "" {
		msg = c.catalog.Default(c.lang)
	}

	if status != businessOK {
		if c.log != nil {
			c.log.Debugw("business failure", "status", status, "message", msg)
		}
		c.showTip(msg)
		c.invokeHandler(status)
		return nil, errors.New(msg)
	}

	return c.data(body), nil
}

// failHTTP handles a server-sent non-2xx response: resolve a localized
// message (offline wins over the status-code entry), fire the handler
// registered for the code, then tip.
func (c *Client) failHTTP(resp *resty.Response) error {
	code := strconv.Itoa(resp.StatusCode())

	var msg string
	switch {
	case !c.online():
		msg = c.catalog.Offline(c.lang)
	default:
		catalogMsg, ok := c.catalog.Message(c.lang, code)
		if !ok {
			catalogMsg = resp.Status()
		}
		msg = catalogMsg
	}

	if c.log != nil {
		c.log.Warnw("http failure", "status", resp.StatusCode(), "message", msg)
	}
	c.invokeHandler(code)
	c.showTip(msg)
	return errors.New(msg)
}

// failTransport handles failures where no server response exists (request
// sent but nothing came back, or setup failed before sending). The raw
// error travels to the caller unchanged.
func (c *Client) failTransport(err error) error {
	if c.log != nil {
		c.log.Warnw("transport failure", "error", err)
	}
	c.showTip(err.Error())
	return err
}

func (c *Client) showTip(msg string) {
	if c.tip {
		c.tipFn(msg)
	}
}

// invokeHandler runs the handler registered for code inside a recover
// boundary; a misbehaving handler must not prevent message resolution.
func (c *Client) invokeHandler(code string) {
	h := c.handlers[code]
	if h == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && c.log != nil {
			c.log.Warnw("status handler panicked", "code", code, "panic", r)
		}
	}()
	h()
}
