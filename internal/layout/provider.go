// Package layout answers questions about the host compositor's outputs: the
// layout context an indicator lives in and the ambient orientation used when
// no explicit size hint is available.
package layout

import (
	"context"
	"fmt"
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	sway "github.com/joshuarubin/go-sway"

	"github.com/oxidane/netbar/internal/indicator"
)

// DefaultWideThreshold is the output width, in pixels, at which indicator
// visibility becomes conditional on the configured preferences.
const DefaultWideThreshold = 1280

const geometryCacheSize = 16

// Provider queries sway for output geometry and classifies it into layout
// contexts. Geometry is cached per output name so controllers can resolve
// their context without an IPC round trip; Refresh repopulates the cache.
type Provider struct {
	threshold int

	mu    sync.Mutex
	cache *lru.Cache[string, indicator.LayoutContext]
}

// NewProvider creates a provider with the given wide-output threshold;
// values <= 0 fall back to DefaultWideThreshold.
func NewProvider(threshold int) (*Provider, error) {
	if threshold <= 0 {
		threshold = DefaultWideThreshold
	}

	cache, err := lru.New[string, indicator.LayoutContext](geometryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create geometry cache: %w", err)
	}

	return &Provider{
		threshold: threshold,
		cache:     cache,
	}, nil
}

// Refresh queries sway for the current outputs, refreshes the geometry cache
// and returns a context per active output.
func (p *Provider) Refresh(ctx context.Context) ([]indicator.LayoutContext, error) {
	client, err := sway.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sway: %w", err)
	}

	outputs, err := client.GetOutputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get outputs: %w", err)
	}

	contexts := make([]indicator.LayoutContext, 0, len(outputs))

	p.mu.Lock()
	p.cache.Purge()
	for _, output := range outputs {
		if !output.Active {
			continue
		}
		lc := p.classify(output.Name, int(output.Rect.Width), int(output.Rect.Height))
		p.cache.Add(lc.Output, lc)
		contexts = append(contexts, lc)
	}
	p.mu.Unlock()

	log.Printf("[LAYOUT] Refreshed %d active outputs", len(contexts))
	return contexts, nil
}

// Context returns the cached layout context for an output name.
func (p *Provider) Context(name string) (indicator.LayoutContext, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cache.Get(name)
}

// Landscape is the ambient orientation query: it reports whether the first
// cached output is wider than tall. With nothing cached it reports portrait,
// which keeps the visibility policy failing open.
func (p *Provider) Landscape() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, name := range p.cache.Keys() {
		if lc, ok := p.cache.Peek(name); ok {
			return lc.Width > lc.Height
		}
	}
	return false
}

// classify builds a layout context from raw output geometry.
func (p *Provider) classify(name string, width, height int) indicator.LayoutContext {
	return indicator.LayoutContext{
		Output: name,
		Width:  width,
		Height: height,
		Wide:   width >= p.threshold,
	}
}
