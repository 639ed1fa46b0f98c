package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wirechain/pkg/cache"
	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/graphio"
	"github.com/matzehuels/wirechain/pkg/observability"
	"github.com/matzehuels/wirechain/pkg/store"
	"github.com/matzehuels/wirechain/pkg/topology"
)

const (
	keyTypeSegments = "segments"
	keyTypeRender   = "render"
)

// Runner executes decompositions with caching and optional persistence.
//
// A Runner keeps no per-run state and may be shared across goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger

	now func() time.Time
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default key scheme and a nil store disables persistence.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
		now:    time.Now,
	}
}

// Execute decomposes the input graph.
func (r *Runner) Execute(ctx context.Context, in graphio.Input, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	start := time.Now()

	if len(in.Edges) > opts.MaxEdges {
		return nil, errs.New(errs.ErrCodeInvalidInput, "graph has %d edges, limit is %d", len(in.Edges), opts.MaxEdges)
	}
	g, err := in.Graph()
	if err != nil {
		return nil, err
	}

	hash := cache.Hash(in.Canonical())
	key := r.Keyer.DecompositionKey(hash, cache.DecompositionKeyOpts{Verified: opts.Verify})

	res := &Result{Graph: g, GraphHash: hash}
	if d, ok := r.cached(ctx, key, opts.Refresh); ok {
		res.Decomposition = d
		res.CacheHit = true
		logger.Debug("decomposition cache hit", "hash", hash[:12])
	} else {
		d, err := r.decompose(ctx, g, opts.Verify)
		if err != nil {
			return nil, err
		}
		res.Decomposition = d
		r.store(ctx, key, d, opts.TTL, logger)
	}

	if opts.Persist {
		if r.Store == nil {
			return nil, errs.New(errs.ErrCodeUnavailable, "no decomposition store configured")
		}
		asset := store.NewAsset(hash, g, res.Decomposition, r.now())
		if err := r.Store.Save(ctx, asset); err != nil {
			return nil, fmt.Errorf("persist: %w", err)
		}
	}

	res.Stats = topology.Summarize(g, res.Decomposition)
	res.Duration = time.Since(start)

	logger.Info("decomposed graph",
		"vertices", res.Stats.Vertices,
		"edges", res.Stats.Edges,
		"segments", res.Stats.Segments,
		"cached", res.CacheHit,
		"duration", res.Duration)

	return res, nil
}

func (r *Runner) cached(ctx context.Context, key string, refresh bool) (topology.Decomposition, bool) {
	if refresh {
		return topology.Decomposition{}, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeSegments)
		return topology.Decomposition{}, false
	}
	d, err := graphio.ReadDecomposition(bytes.NewReader(data))
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeSegments)
		return topology.Decomposition{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeSegments)
	return d, true
}

func (r *Runner) decompose(ctx context.Context, g *topology.Graph, verify bool) (topology.Decomposition, error) {
	hooks := observability.Decompose()
	hooks.OnDecomposeStart(ctx, g.VertexCount(), g.EdgeCount())
	start := time.Now()

	d := topology.Pack(topology.Trace(g))
	var err error
	if verify {
		err = topology.Verify(g, d)
	}

	hooks.OnDecomposeComplete(ctx, d.Len(), time.Since(start), err)
	if err != nil {
		return topology.Decomposition{}, err
	}
	return d, nil
}

// encodeDecomposition serializes cache entries.
var encodeDecomposition = graphio.WriteJSON

func (r *Runner) store(ctx context.Context, key string, d topology.Decomposition, ttl time.Duration, logger *log.Logger) {
	var buf bytes.Buffer
	if err := encodeDecomposition(&buf, d, graphio.WriteOptions{}); err != nil {
		logger.Warn("cache encode failed", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), ttl); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeSegments, buf.Len())
}

// Load fetches a persisted decomposition and rebuilds its topology from the
// segments. Returns a NOT_FOUND error for unknown hashes.
func (r *Runner) Load(ctx context.Context, hash string) (*Result, error) {
	if err := errs.ValidateAssetKey(hash); err != nil {
		return nil, err
	}
	if r.Store == nil {
		return nil, errs.New(errs.ErrCodeNotFound, "decomposition %s not found", hash)
	}
	a, err := r.Store.Load(ctx, hash)
	if err != nil {
		return nil, err
	}

	d := a.Decomposition()
	g, err := topology.NewGraph(a.VertexCount, d.Edges())
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "stored decomposition %s is corrupt", hash)
	}
	return &Result{
		Graph:         g,
		Decomposition: d,
		GraphHash:     a.Hash,
		Stats:         topology.Summarize(g, d),
		CacheHit:      true,
	}, nil
}

// Close releases the cache and the store.
func (r *Runner) Close(ctx context.Context) error {
	var first error
	if r.Cache != nil {
		first = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
