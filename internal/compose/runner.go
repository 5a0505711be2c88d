package compose

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run executes one composition per (ratio, replicate) pair on a pool of
// workers. Jobs are independent, so scheduling order does not affect
// any artifact; results are returned in (ratio, replicate) enumeration
// order regardless of which worker finished first. The first failure
// cancels the remaining jobs and is returned.
func Run(ctx context.Context, groupA, groupB []Source, ratios []Ratio, totalReads, replicates int, outDir string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}

	type job struct {
		idx    int
		params Params
	}
	var jobs []job
	for _, r := range ratios {
		for rep := 1; rep <= replicates; rep++ {
			jobs = append(jobs, job{
				idx: len(jobs),
				params: Params{
					GroupA:     groupA,
					GroupB:     groupB,
					Ratio:      r,
					TotalReads: totalReads,
					Replicate:  rep,
					OutDir:     outDir,
				},
			})
		}
	}

	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range jobs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			res, err := Compose(j.params)
			if err != nil {
				return err
			}
			results[j.idx] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
