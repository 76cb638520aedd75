package occult

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/soniakeys/meeus/v3/julian"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

/* Handles the batched light curve evaluations. */

// Campaign evaluates the light curves of a system over an observing window,
// spreading the work over several goroutines. Time samples are independent,
// so the rows are split into disjoint chunks, one per worker.
type Campaign struct {
	Name    string
	System  System
	Times   []float64 // days
	Workers int       // 0 falls back to the configuration, then to NumCPU
	logger  kitlog.Logger
}

// NewCampaign returns a campaign logging logfmt to stdout.
func NewCampaign(name string, system System, times []float64) *Campaign {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "campaign", name)
	return &Campaign{Name: name, System: system, Times: times, logger: klog}
}

// SetLogger replaces the default logger, e.g. to quieten tests.
func (c *Campaign) SetLogger(l kitlog.Logger) {
	c.logger = l
}

func (c *Campaign) workerCount() int {
	workers := c.Workers
	if workers <= 0 {
		workers = occultConfig().workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return min(workers, len(c.Times))
}

// Run evaluates the light curve of every body at every campaign time. The
// output has one row per time, the central body in column 0 and body k in
// column 1+k, exactly as System.LightCurves. The first error aborts the
// whole run.
func (c *Campaign) Run() (*mat.Dense, error) {
	if len(c.Times) == 0 {
		return nil, fmt.Errorf("%w: campaign %s has no times", ErrInvalidGeometry, c.Name)
	}
	if err := c.System.validate(); err != nil {
		return nil, err
	}
	workers := c.workerCount()
	orbits := c.System.orbits()
	cols := 1 + len(c.System.Bodies)
	out := mat.NewDense(len(c.Times), cols, nil)
	chunk := (len(c.Times) + workers - 1) / workers
	start := time.Now()
	c.logger.Log("level", "info", "subsys", "flux", "status", "started", "times", len(c.Times), "bodies", len(c.System.Bodies), "workers", workers)
	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(c.Times))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			row := make([]float64, cols)
			for i := lo; i < hi; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				if err := c.System.fluxRow(c.Times[i], orbits, row); err != nil {
					return fmt.Errorf("sample %d (t=%g days): %w", i, c.Times[i], err)
				}
				out.SetRow(i, row)
			}
			c.logger.Log("level", "info", "subsys", "flux", "status", "chunk done", "rows", hi-lo)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Log("level", "critical", "subsys", "flux", "status", "aborted", "error", err)
		return nil, err
	}
	c.logger.Log("level", "notice", "subsys", "flux", "status", "finished", "duration", time.Since(start).String())
	return out, nil
}

// TimeGrid returns n evenly spaced times in days spanning the given civil
// dates, measured from the midpoint of the window so that a transit centered
// on the window falls at t = 0.
func TimeGrid(start, end time.Time, n int) []float64 {
	if n < 1 {
		return nil
	}
	// Must switch to UTC as julian dates are in UTC.
	jd0 := julian.TimeToJD(start.UTC())
	jd1 := julian.TimeToJD(end.UTC())
	ts := make([]float64, n)
	if n == 1 {
		return ts // the midpoint
	}
	mid := (jd0 + jd1) / 2
	step := (jd1 - jd0) / float64(n-1)
	for i := range ts {
		ts[i] = jd0 + float64(i)*step - mid
	}
	return ts
}
