package convert

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"unshader/internal/shader"
	"unshader/internal/unityfmt"
)

// Outcome is the conversion of one input file.
type Outcome struct {
	Path   string
	Result *Result
	Err    error
}

// ConvertFiles loads and converts every path with at most jobs conversions
// in flight; jobs <= 0 means GOMAXPROCS. Outcomes keep input order.
//
// In best-effort mode per-file failures stay in their Outcome and the
// returned error is nil. In strict mode the first failure cancels the
// remaining work and is returned.
func (c *Converter) ConvertFiles(ctx context.Context, paths []string, jobs int) ([]Outcome, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	out := make([]Outcome, len(paths))
	strict := c.opts.Mode == unityfmt.ModeStrict

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		out[i].Path = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				out[i].Err = err
				return err
			}
			a, err := shader.Load(path)
			if err == nil {
				out[i].Result, err = c.Convert(gctx, a)
			}
			out[i].Err = err
			if err != nil {
				Logger().Warn("conversion failed", "path", path, "err", err)
				if strict {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
