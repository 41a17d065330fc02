package crossval

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/DancingOnAir/linmod"
)

func TestKFoldPartition(t *testing.T) {
	const (
		n = 23
		k = 5
	)
	folds, err := KFold(n, k, 1)
	require.NoError(t, err)
	require.Len(t, folds, k)

	var all []int
	for _, fold := range folds {
		// Fold sizes differ by at most one row.
		assert.InDelta(t, float64(n)/float64(k), float64(len(fold.Test)), 1)
		assert.Len(t, fold.Train, n-len(fold.Test))
		all = append(all, fold.Test...)
	}

	// Test folds are disjoint and cover every row exactly once.
	sort.Ints(all)
	require.Len(t, all, n)
	for i, row := range all {
		assert.Equal(t, i, row)
	}
}

func TestKFoldDeterministic(t *testing.T) {
	first, err := KFold(40, 4, 99)
	require.NoError(t, err)
	second, err := KFold(40, 4, 99)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestKFoldBadFoldCount(t *testing.T) {
	_, err := KFold(10, 1, 0)
	require.ErrorIs(t, err, ErrBadFoldCount)

	_, err = KFold(10, 11, 0)
	require.ErrorIs(t, err, ErrBadFoldCount)
}

func linearTable(t *testing.T) *linmod.Table {
	t.Helper()
	rng := rand.New(rand.NewSource(5))
	const n = 50
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i) * 0.2
		ys[i] = 1 + 2*xs[i] + 0.5*rng.NormFloat64()
	}
	tbl := linmod.NewTable()
	require.NoError(t, tbl.AddNumeric("x", xs))
	require.NoError(t, tbl.AddNumeric("y", ys))
	return tbl
}

func TestRunLinearModel(t *testing.T) {
	tbl := linearTable(t)
	terms := []linmod.Term{linmod.Intercept{}, linmod.Numeric{Col: "x"}}

	summary, err := Run(tbl, "y", terms, 5, 17)
	require.NoError(t, err)
	require.Len(t, summary.Folds, 5)

	// A well-specified linear model generalizes: held-out R2 stays high.
	assert.Greater(t, summary.MeanR2, 0.8)
	assert.Less(t, summary.MeanRMSE, 1.5)
}

func TestRunDeterministic(t *testing.T) {
	tbl := linearTable(t)
	terms := []linmod.Term{linmod.Intercept{}, linmod.Numeric{Col: "x"}}

	first, err := Run(tbl, "y", terms, 4, 3)
	require.NoError(t, err)
	second, err := Run(tbl, "y", terms, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunSurfacesFitErrors(t *testing.T) {
	tbl := linmod.NewTable()
	require.NoError(t, tbl.AddNumeric("x", []float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, tbl.AddNumeric("y", []float64{1, 2, 3, 4, 5, 6}))

	// Duplicating the predictor makes every fold's design rank deficient.
	terms := []linmod.Term{
		linmod.Intercept{},
		linmod.Numeric{Col: "x"},
		linmod.Numeric{Col: "x"},
	}
	_, err := Run(tbl, "y", terms, 3, 0)
	require.ErrorIs(t, err, linmod.ErrSingularDesign)
}
