package lotsizing

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Job struct {
	Name     string
	Instance *Instance
}

// BatchResult holds the outcome of one job. Err is per job and does not stop the batch.
type BatchResult struct {
	Name     string
	Solution *Solution
	Err      error
}

// SolveBatch solves independent instances with at most workers concurrent solves.
// Results keep the order of jobs. The returned error is non-nil only if ctx ended
// before all jobs were started.
func SolveBatch(ctx context.Context, jobs []Job, workers int, f Formulation, solver Solver) ([]BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]BatchResult, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		results[i].Name = job.Name
		if err := gCtx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			Log(LOG_INFO, "Solving %s with %s", job.Name, f.Name())
			sol, err := Run(gCtx, job.Instance, f, solver)
			results[i].Solution = sol
			results[i].Err = err
			if err != nil {
				Log(LOG_ERROR, "At %s: %s", job.Name, err.Error())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
