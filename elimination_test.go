package linmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// eliminationTable simulates an outcome that depends on x1 only; x2 is
// pure noise.
func eliminationTable(t *testing.T) *Table {
	t.Helper()
	rng := rand.New(rand.NewSource(13))
	const n = 60
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = rng.NormFloat64()
		x2[i] = rng.NormFloat64()
		y[i] = 3 + 2*x1[i] + 0.5*rng.NormFloat64()
	}
	tbl := NewTable()
	require.NoError(t, tbl.AddNumeric("x1", x1))
	require.NoError(t, tbl.AddNumeric("x2", x2))
	require.NoError(t, tbl.AddNumeric("y", y))
	return tbl
}

func TestBackwardEliminateDropsNoiseTerm(t *testing.T) {
	tbl := eliminationTable(t)
	terms := []Term{Intercept{}, Numeric{Col: "x1"}, Numeric{Col: "x2"}}

	models, err := BackwardEliminate(tbl, "y", terms, 0.001, nil)
	require.NoError(t, err)
	require.Len(t, models, 2)

	final := models[len(models)-1]
	require.Len(t, final.Coeffs, 2)
	assert.Equal(t, "(Intercept)", final.Coeffs[0].Label)
	assert.Equal(t, "x1", final.Coeffs[1].Label)
	assert.InDelta(t, 2, final.Coeffs[1].Value, 0.3)
}

func TestBackwardEliminateKeepsForcedTerm(t *testing.T) {
	tbl := eliminationTable(t)
	terms := []Term{Intercept{}, Numeric{Col: "x1"}, Numeric{Col: "x2"}}

	models, err := BackwardEliminate(tbl, "y", terms, 0.001, map[int]struct{}{2: {}})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Len(t, models[0].Coeffs, 3)
}
