package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/wirechain/pkg/cache"
	"github.com/matzehuels/wirechain/pkg/observability"
	"github.com/matzehuels/wirechain/pkg/render"
)

// RenderWithCacheInfo draws a result and reports whether it came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts RenderOptions) ([]byte, bool, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.RenderKey(res.GraphHash, cache.RenderKeyOpts{Format: opts.Format, Labels: opts.Labels})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, keyTypeRender)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeRender)

	hooks := observability.Decompose()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()

	out, err := render.Render(ctx, res.Graph, res.Decomposition, render.Format(opts.Format), render.Options{Labels: opts.Labels})
	hooks.OnRenderComplete(ctx, opts.Format, len(out), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, out, opts.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, keyTypeRender, len(out))
	}
	r.Logger.Debug("rendered decomposition", "format", opts.Format, "bytes", len(out))
	return out, false, nil
}

// Render draws a result in the requested format.
func (r *Runner) Render(ctx context.Context, res *Result, opts RenderOptions) ([]byte, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return out, err
}
