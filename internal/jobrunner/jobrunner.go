// Package jobrunner implements the parallel decompress driver. Job
// distribution is grounded in pelican-dev-wings' use of
// github.com/gammazero/workerpool to fan archive operations out across
// a bounded number of goroutines, and aggregated failure reporting uses
// github.com/hashicorp/go-multierror the same way that repo collects
// per-task errors into a single value.
package jobrunner

import (
	"runtime"

	"github.com/gammazero/workerpool"
	"github.com/hashicorp/go-multierror"

	"github.com/archio-dev/archio/internal/pipeline"
)

// Job is one decode request to run, along with a label used only for
// error attribution.
type Job struct {
	Label   string
	Request pipeline.DecodeRequest
}

// Result pairs a Job's label with its outcome.
type Result struct {
	Label   string
	Summary pipeline.DecodeSummary
	Err     error
}

// Threads resolves the user's --threads setting to a worker count: 0 or
// negative means "use the CPU count", a common default for unset
// worker-pool sizes across the corpus.
func Threads(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.NumCPU()
}

// Run fans jobs out across a pool sized by Threads(threads) and runs
// each one's Decode independently. Prompts raised from within a job
// (via the job's own corepolicy.Engine) serialize globally because they
// acquire process-wide stdio locks themselves; Run does not coordinate
// that here.
//
// Every job always produces a Result, so the caller can log successes
// and skips alongside failures; err aggregates only the failed jobs,
// via go-multierror, and is nil when every job succeeded or was
// cleanly cancelled.
func Run(jobs []Job, threads int) (results []Result, err error) {
	pool := workerpool.New(Threads(threads))
	results = make([]Result, len(jobs))

	for i, job := range jobs {
		i, job := i, job
		pool.Submit(func() {
			summary, jobErr := pipeline.Decode(job.Request)
			results[i] = Result{Label: job.Label, Summary: summary, Err: jobErr}
		})
	}

	pool.StopWait()

	var merr *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			merr = multierror.Append(merr, r.Err)
		}
	}
	if merr != nil {
		return results, merr.ErrorOrNil()
	}
	return results, nil
}
