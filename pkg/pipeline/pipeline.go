// Package pipeline runs decompositions for the CLI and the API.
//
// A run hashes the canonical graph encoding, consults the cache, traces the
// segments on a miss, optionally verifies and persists the result, and
// returns it together with summary statistics:
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	res, err := runner.Execute(ctx, input, pipeline.Options{Verify: true})
//	svg, err := runner.Render(ctx, res, pipeline.RenderOptions{Format: "svg"})
//
// Both entry points share the Runner so that caching, verification and
// observability behave the same everywhere.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wirechain/pkg/cache"
	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/render"
	"github.com/matzehuels/wirechain/pkg/topology"
)

// DefaultMaxEdges bounds the graphs a runner accepts.
const DefaultMaxEdges = 1 << 26

// Options configures a decomposition run.
type Options struct {
	// Verify checks the result with topology.Verify before returning it.
	Verify bool `json:"verify,omitempty"`

	// Refresh ignores cached results and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Persist saves the result to the runner's store.
	Persist bool `json:"persist,omitempty"`

	// MaxEdges rejects larger graphs. Zero means DefaultMaxEdges.
	MaxEdges int `json:"max_edges,omitempty"`

	// TTL is how long the result stays cached. Zero means cache.DefaultTTL.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero values.
func (o *Options) SetDefaults() {
	if o.MaxEdges == 0 {
		o.MaxEdges = DefaultMaxEdges
	}
	if o.TTL == 0 {
		o.TTL = cache.DefaultTTL
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.MaxEdges < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_edges must not be negative")
	}
	if o.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "ttl must not be negative")
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// RenderOptions configures Runner.Render.
type RenderOptions struct {
	Format string `json:"format"`
	Labels bool   `json:"labels,omitempty"`

	// TTL is how long the drawing stays cached. Zero means cache.DefaultTTL.
	TTL time.Duration `json:"-"`
}

// SetDefaults fills zero values.
func (o *RenderOptions) SetDefaults() {
	if o.Format == "" {
		o.Format = string(render.FormatSVG)
	}
	if o.TTL == 0 {
		o.TTL = cache.DefaultTTL
	}
}

// Validate checks the options.
func (o RenderOptions) Validate() error {
	if o.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "ttl must not be negative")
	}
	_, err := render.ParseFormat(o.Format)
	return err
}

// Result is the outcome of a run.
type Result struct {
	Graph         *topology.Graph        `json:"-"`
	Decomposition topology.Decomposition `json:"decomposition"`
	GraphHash     string                 `json:"graph_hash"`
	Stats         topology.Stats         `json:"stats"`
	CacheHit      bool                   `json:"cache_hit"`
	Duration      time.Duration          `json:"duration_ns"`
}
