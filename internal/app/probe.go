package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/anvil-web/reqkit/internal/config"
	"github.com/anvil-web/reqkit/pkg/catalog"
	"github.com/anvil-web/reqkit/pkg/webclient"
)

// Probe wires a webclient.Client from config and issues a single request
// against the configured endpoint. It exists so the client can be exercised
// against a live backend without writing code.
type Probe struct {
	cfg    *config.Config
	client *webclient.Client
	log    *zap.SugaredLogger
}

// NewProbe builds a probe runtime from config.
func NewProbe(cfg *config.Config, log *zap.SugaredLogger) (*Probe, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	cat := catalog.Builtin()
	if cfg.CatalogOverlay != "" {
		overlaid, err := catalog.LoadOverlay(cfg.CatalogOverlay)
		if err != nil {
			return nil, fmt.Errorf("load catalog overlay: %w", err)
		}
		cat = overlaid
	}

	client, err := webclient.New(webclient.Options{
		Tip: cfg.TipEnabled,
		TipFunc: func(msg string) {
			if log != nil {
				log.Warnw("tip", "message", msg)
			}
		},
		Lang:    cfg.Lang,
		Catalog: cat,
		Logger:  log,
		LoadingStart: func() {
			if log != nil {
				log.Debugw("loading started")
			}
		},
		LoadingStop: func() {
			if log != nil {
				log.Debugw("loading stopped")
			}
		},
	}, webclient.Transport{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}

	return &Probe{cfg: cfg, client: client, log: log}, nil
}

// Run issues the configured request and returns the extracted payload.
func (p *Probe) Run(ctx context.Context) ([]byte, error) {
	method := strings.ToUpper(strings.TrimSpace(p.cfg.ProbeMethod))
	path := p.cfg.ProbePath

	switch method {
	case http.MethodGet, "":
		return p.client.Get(ctx, path, nil, webclient.WithLoading())
	case http.MethodPost:
		return p.client.Post(ctx, path, nil, webclient.WithLoading())
	case http.MethodPut:
		return p.client.Put(ctx, path, nil, webclient.WithLoading())
	case http.MethodDelete:
		return p.client.Delete(ctx, path, nil, webclient.WithLoading())
	default:
		return nil, fmt.Errorf("unsupported probe method %q", p.cfg.ProbeMethod)
	}
}
