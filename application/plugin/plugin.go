package plugin

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"sync"
	"time"

	"github.com/reglet-dev/ohoo/domain/entities"
)

// Plugin is the interface every translator-style plugin implements.
type Plugin interface {
	Describe(ctx context.Context) (entities.Metadata, error)
	Schema(ctx context.Context) ([]byte, error)
	Check(ctx context.Context, config map[string]any) (entities.Result, error)
}

// Lifecycle is implemented by plugins that need setup or teardown.
type Lifecycle interface {
	Initialize(ctx context.Context) error
	Terminate(ctx context.Context) error
}

// ErrNotStarted is returned by Host.Check before Start or after Stop.
var ErrNotStarted = stdErrors.New("plugin host not started")

// Host drives a plugin through its lifecycle and stamps run metadata on
// every result.
type Host struct {
	plugin  Plugin
	logger  *slog.Logger
	now     func() time.Time
	meta    entities.Metadata
	cfg     entities.Config
	mu      sync.RWMutex
	started bool
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithConfig sets the runtime configuration.
func WithConfig(cfg entities.Config) HostOption {
	return func(h *Host) {
		h.cfg = cfg
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) HostOption {
	return func(h *Host) {
		h.now = now
	}
}

// NewHost creates a host for p.
func NewHost(p Plugin, opts ...HostOption) *Host {
	h := &Host{
		plugin: p,
		logger: slog.Default(),
		now:    time.Now,
		cfg:    entities.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start describes the plugin and runs its Initialize hook, if any.
// Calling Start on a started host is a no-op.
func (h *Host) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return nil
	}

	meta, err := h.plugin.Describe(ctx)
	if err != nil {
		return err
	}
	if lc, ok := h.plugin.(Lifecycle); ok {
		if err := lc.Initialize(ctx); err != nil {
			return err
		}
	}

	h.meta = meta
	h.started = true
	h.logger.InfoContext(ctx, "plugin initialized", "plugin", meta.Name, "version", meta.Version)
	return nil
}

// Stop runs the plugin's Terminate hook, if any.
func (h *Host) Stop(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.started {
		return nil
	}
	h.started = false

	if lc, ok := h.plugin.(Lifecycle); ok {
		if err := lc.Terminate(ctx); err != nil {
			return err
		}
	}
	h.logger.InfoContext(ctx, "plugin terminated", "plugin", h.meta.Name)
	return nil
}

// Metadata returns what the plugin reported at Start.
func (h *Host) Metadata() entities.Metadata {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.meta
}

// Check runs the plugin and attaches RunMetadata to the result.
func (h *Host) Check(ctx context.Context, config map[string]any) (entities.Result, error) {
	h.mu.RLock()
	started, meta := h.started, h.meta
	h.mu.RUnlock()

	if !started {
		return entities.Result{}, ErrNotStarted
	}

	start := h.now()
	res, err := h.plugin.Check(ctx, config)
	if err != nil {
		h.logger.ErrorContext(ctx, "plugin check failed", "plugin", meta.Name, "error", err)
		return entities.Result{}, err
	}
	end := h.now()

	pluginID := h.cfg.PluginID
	if pluginID == "" {
		pluginID = meta.Name
	}
	res.Timestamp = end
	res = res.WithMetadata(entities.NewRunMetadata(start, end).
		WithPluginID(pluginID).
		WithVersion(meta.Version))

	h.logger.DebugContext(ctx, "plugin check completed",
		"plugin", meta.Name,
		"status", string(res.Status),
		"duration", end.Sub(start),
	)
	return res, nil
}
