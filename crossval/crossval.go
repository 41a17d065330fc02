// Package crossval runs k-fold cross-validation over linmod models to
// estimate out-of-sample accuracy. It treats the estimator as a black
// box: each fold is fitted on the remaining folds and scored on the
// held-out rows.
package crossval

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/DancingOnAir/linmod"
	"github.com/DancingOnAir/linmod/logger"
)

// ErrBadFoldCount signals a fold count outside [2, n].
var ErrBadFoldCount = errors.New("fold count must be between 2 and the number of observations")

// Fold is one train/test partition of row indexes.
type Fold struct {
	Train []int
	Test  []int
}

// FoldResult is the held-out score of a single fold.
type FoldResult struct {
	Fold int
	R2   float64
	RMSE float64
}

// Summary aggregates per-fold scores by simple averaging.
type Summary struct {
	MeanR2   float64
	MeanRMSE float64
	Folds    []FoldResult
}

// KFold partitions the row indexes 0..n-1 into k disjoint folds of
// nearly equal size. Rows are shuffled with the given seed, so the same
// seed always produces the same partition.
func KFold(n, k int, seed uint64) ([]Fold, error) {
	if k < 2 || k > n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrBadFoldCount, k, n)
	}

	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})

	folds := make([]Fold, k)
	for f := range folds {
		// The first n%k folds take one extra row.
		lo := f*(n/k) + min(f, n%k)
		hi := lo + n/k
		if f < n%k {
			hi++
		}
		test := append([]int(nil), rows[lo:hi]...)
		train := make([]int, 0, n-len(test))
		train = append(train, rows[:lo]...)
		train = append(train, rows[hi:]...)
		folds[f] = Fold{Train: train, Test: test}
	}
	return folds, nil
}

// Run cross-validates the model described by terms over tbl. For each of
// the k folds it fits on the other folds, predicts the held-out rows
// through the fold's own design (so categorical coding is bound on the
// training rows only), and scores R-squared and RMSE against the held-out
// outcomes.
func Run(tbl *linmod.Table, outcome string, terms []linmod.Term, k int, seed uint64) (*Summary, error) {
	folds, err := KFold(tbl.NumRows(), k, seed)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Folds: make([]FoldResult, 0, k)}
	for f, fold := range folds {
		trainTbl := tbl.Select(fold.Train)
		testTbl := tbl.Select(fold.Test)

		model, design, err := linmod.FitTable(trainTbl, outcome, terms)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}
		xTest, err := design.Encode(testTbl)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}
		predicted, err := model.Predict(xTest)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}
		yTest, err := testTbl.Numeric(outcome)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", f, err)
		}

		r2, rmse := score(yTest, predicted)
		summary.Folds = append(summary.Folds, FoldResult{Fold: f, R2: r2, RMSE: rmse})
		summary.MeanR2 += r2 / float64(k)
		summary.MeanRMSE += rmse / float64(k)
	}

	logger.Info.Printf("Completed %d-fold cross-validation: mean R2 = %f, mean RMSE = %f",
		k, summary.MeanR2, summary.MeanRMSE)
	return summary, nil
}

// score computes out-of-sample R-squared and RMSE of predictions against
// observed outcomes. R-squared uses the held-out mean and can be negative
// when the model predicts worse than that mean; a constant held-out
// outcome scores 0.
func score(y, predicted []float64) (r2, rmse float64) {
	n := float64(len(y))
	var mean float64
	for _, yi := range y {
		mean += yi / n
	}
	var ssErr, ssTot float64
	for i, yi := range y {
		e := yi - predicted[i]
		d := yi - mean
		ssErr += e * e
		ssTot += d * d
	}
	rmse = math.Sqrt(ssErr / n)
	if ssTot > 0 {
		r2 = 1 - ssErr/ssTot
	}
	return r2, rmse
}
