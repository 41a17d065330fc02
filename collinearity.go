package linmod

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Collinearity is the tolerance and variance inflation factor of one
// design-matrix column.
type Collinearity struct {
	Tolerance float64 // 1 - R^2 of this column regressed on the others
	VIF       float64 // 1 / Tolerance; +Inf when the column is fully explained
}

// Collinearities diagnoses near-collinear design-matrix columns by
// regressing each column on all the others. A VIF well above 10 usually
// explains a RankError or unstable standard errors. With fewer than two
// columns every VIF is 1 by definition.
func Collinearities(x mat.Matrix) ([]Collinearity, error) {
	n, p := x.Dims()
	out := make([]Collinearity, p)
	if p < 2 {
		for j := range out {
			out[j] = Collinearity{Tolerance: 1, VIF: 1}
		}
		return out, nil
	}

	colBuf := make([]float64, n)
	for j := 0; j < p; j++ {
		rest := mat.NewDense(n, p-1, nil)
		for k, kk := 0, 0; k < p; k++ {
			if k == j {
				continue
			}
			mat.Col(colBuf, k, x)
			rest.SetCol(kk, colBuf)
			kk++
		}
		mat.Col(colBuf, j, x)

		model, err := Fit(rest, colBuf)
		if err != nil {
			return nil, err
		}
		tolerance := 1 - model.R2
		vif := math.Inf(1)
		if tolerance > 0 {
			vif = 1 / tolerance
		}
		out[j] = Collinearity{Tolerance: tolerance, VIF: vif}
	}
	return out, nil
}
