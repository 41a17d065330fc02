package linmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestCollinearitiesIndependentColumns(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	n := 200
	x := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, rng.NormFloat64())
		x.Set(i, 2, rng.NormFloat64())
	}

	diags, err := Collinearities(x)
	require.NoError(t, err)
	require.Len(t, diags, 3)

	// Independent draws carry almost no shared variance.
	assert.Less(t, diags[1].VIF, 1.5)
	assert.Less(t, diags[2].VIF, 1.5)
}

func TestCollinearitiesNearCollinearColumns(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	n := 100
	x := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		v := rng.NormFloat64()
		x.Set(i, 0, 1)
		x.Set(i, 1, v)
		x.Set(i, 2, v+0.01*rng.NormFloat64())
	}

	diags, err := Collinearities(x)
	require.NoError(t, err)

	assert.Greater(t, diags[1].VIF, 100.0)
	assert.Greater(t, diags[2].VIF, 100.0)
}

func TestCollinearitiesSingleColumn(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})

	diags, err := Collinearities(x)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, 1.0, diags[0].VIF)
}
