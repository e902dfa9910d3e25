package vegan

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/MichaelChirico/vegan/linalg"
)

// Result holds the per-permutation statistic pairs produced by GetF.
type Result struct {
	nperm int
	stats []float64 // nperm×2 row-major: {fitted statistic, residual sum}
}

// Len returns the number of permutations in the result.
func (r *Result) Len() int { return r.nperm }

// Fitted returns the primary statistic for permutation k: the leading
// eigenvalue of the fitted block when WithFirstEigenvalue was set, otherwise
// its total sum of squares.
func (r *Result) Fitted(k int) float64 { return r.stats[2*k] }

// Residual returns the residual sum of squares for permutation k.
//
// The value is meaningful only when WithPartial or WithFirstEigenvalue was
// set. Otherwise the column is left as filler (zero) and the caller derives
// it from the already-known total eigenvalue sum minus Fitted(k) — the
// residual projection is deliberately skipped in that case to save work.
func (r *Result) Residual(k int) float64 { return r.stats[2*k+1] }

// Matrix returns the statistics as a freshly allocated nperm×2 matrix, with
// Fitted in column 0 and Residual in column 1. An empty batch yields an
// empty matrix.
func (r *Result) Matrix() *mat.Dense {
	if r.nperm == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, len(r.stats))
	copy(data, r.stats)
	return mat.NewDense(r.nperm, 2, data)
}

// GetF evaluates the permutation-test statistics that seed the F ratio of a
// constrained ordination. For every row of perms it permutes the rows of the
// response e, optionally residualizes the permuted copy against a partial
// model, projects it through the primary model factor, and reduces the
// fitted and residual blocks to one statistic pair.
//
// perms holds 1-based row indices, one permutation of {1,…,nr} per row; GetF
// converts a private copy to 0-based and never mutates the caller's table.
// By default every row is checked to be a bijection (see WithoutValidation).
//
// Permutations are independent, so the loop runs on WithWorkers goroutines
// (default GOMAXPROCS), each owning its scratch buffers and disjoint result
// rows. The factors and e are only read. The first numeric-primitive
// failure, or ctx becoming done, aborts the whole batch: no partial results
// are returned.
func GetF(ctx context.Context, perms [][]int, e *mat.Dense, model *linalg.Factor, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	start := time.Now()

	res, workers, err := getF(ctx, perms, e, model, &o)

	o.metrics.RecordBatch(len(perms), time.Since(start), err)
	o.logger.LogBatch(ctx, len(perms), workers, time.Since(start), err)
	return res, err
}

func getF(ctx context.Context, perms [][]int, e *mat.Dense, model *linalg.Factor, o *options) (*Result, int, error) {
	if e == nil {
		return nil, 0, ErrNoData
	}
	nr, nc := e.Dims()
	if nr == 0 || nc == 0 {
		return nil, 0, ErrNoData
	}
	if model == nil {
		return nil, 0, ErrNilFactor
	}
	if model.Rows() != nr {
		return nil, 0, &ErrDimensionMismatch{What: "model factor rows", Expected: nr, Actual: model.Rows()}
	}
	if o.partial != nil && o.partial.Rows() != nr {
		return nil, 0, &ErrDimensionMismatch{What: "partial factor rows", Expected: nr, Actual: o.partial.Rows()}
	}
	if o.distanceBased && nr != nc {
		return nil, 0, &ErrDimensionMismatch{What: "distance-based response columns", Expected: nr, Actual: nc}
	}

	nperm := len(perms)
	if nperm == 0 {
		return &Result{}, 0, nil
	}

	// Private 0-based copy of the permutation table.
	iperm := make([]int, nperm*nr)
	for k, row := range perms {
		if len(row) != nr {
			return nil, 0, &ErrDimensionMismatch{What: fmt.Sprintf("permutation row %d length", k), Expected: nr, Actual: len(row)}
		}
		for i, v := range row {
			iperm[k*nr+i] = v - 1
		}
	}
	if o.validate {
		seen := make([]bool, nr)
		for k := 0; k < nperm; k++ {
			for i := range seen {
				seen[i] = false
			}
			for i := 0; i < nr; i++ {
				v := iperm[k*nr+i]
				if v < 0 || v >= nr || seen[v] {
					return nil, 0, &ErrMalformedPermutation{Row: k, Index: v + 1}
				}
				seen[v] = true
			}
		}
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > nperm {
		workers = nperm
	}

	eRaw := e.RawMatrix()
	needResid := o.partial != nil || o.first
	stats := make([]float64, 2*nperm)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (nperm + workers - 1) / workers
	for lo := 0; lo < nperm; lo += chunk {
		lo := lo
		hi := min(lo+chunk, nperm)
		g.Go(func() error {
			w := newWorker(nr, nc, needResid)
			for k := lo; k < hi; k++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := w.run(k, iperm, eRaw, model, o, stats); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, workers, err
	}
	return &Result{nperm: nperm, stats: stats}, workers, nil
}

// worker owns the scratch buffers for one goroutine of the permutation
// loop: the permuted response, the fitted and residual blocks, and the
// projection/SVD workspaces. Every buffer is fully overwritten each round.
type worker struct {
	y      blas64.General
	fitted blas64.General
	resid  blas64.General
	ps     linalg.Scratch
	ss     linalg.SVDScratch
}

func newWorker(nr, nc int, needResid bool) *worker {
	w := &worker{
		y:      blas64.General{Rows: nr, Cols: nc, Stride: nc, Data: make([]float64, nr*nc)},
		fitted: blas64.General{Rows: nr, Cols: nc, Stride: nc, Data: make([]float64, nr*nc)},
	}
	if needResid {
		w.resid = blas64.General{Rows: nr, Cols: nc, Stride: nc, Data: make([]float64, nr*nc)}
	}
	return w
}

func (w *worker) run(k int, iperm []int, e blas64.General, model *linalg.Factor, o *options, stats []float64) error {
	nr, nc := w.y.Rows, w.y.Cols

	// Permuted response: row i of the working block is source row iperm[i].
	for i := 0; i < nr; i++ {
		src := iperm[k*nr+i]
		copy(w.y.Data[i*nc:(i+1)*nc], e.Data[src*e.Stride:src*e.Stride+nc])
	}

	// Remove the conditioning model first, residualizing in place.
	if o.partial != nil {
		if err := o.partial.Project(w.y, linalg.WantResiduals, blas64.General{}, w.y, &w.ps); err != nil {
			return fmt.Errorf("vegan: partial model, permutation %d: %w", k, err)
		}
	}

	want := linalg.WantFitted
	if o.partial != nil || o.first {
		want |= linalg.WantResiduals
	}
	if err := model.Project(w.y, want, w.fitted, w.resid, &w.ps); err != nil {
		return fmt.Errorf("vegan: primary model, permutation %d: %w", k, err)
	}

	switch {
	case o.first:
		sv, err := linalg.LeadingSingularValue(w.fitted.Data, nr, nc, &w.ss)
		if err != nil {
			return fmt.Errorf("vegan: permutation %d: %w", k, err)
		}
		stats[2*k] = sv * sv
	case o.distanceBased:
		stats[2*k] = linalg.SumSquaresDiag(w.fitted.Data, nr, nc)
	default:
		stats[2*k] = linalg.SumSquares(w.fitted.Data)
	}
	if want&linalg.WantResiduals != 0 {
		if o.distanceBased {
			stats[2*k+1] = linalg.SumSquaresDiag(w.resid.Data, nr, nc)
		} else {
			stats[2*k+1] = linalg.SumSquares(w.resid.Data)
		}
	}
	return nil
}
