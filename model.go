package linmod

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Coefficient is the inference result for one design-matrix column.
type Coefficient struct {
	Label        string  // column label, "X<j>" when the model was fitted from a bare matrix
	Value        float64 // fitted weight
	StdErr       float64 // standard error of the weight
	TStat        float64 // Value / StdErr
	PValue       float64 // two-sided Student-t probability on the residual degrees of freedom
	Standardized float64 // weight rescaled to standard-deviation units; 0 for constant columns
}

// ANOVA is the variance decomposition of a fitted model. FStat and FProb
// are NaN when the model has no term columns beyond the constant or the
// outcome is constant.
type ANOVA struct {
	ModelSumOfSquares    float64
	ModelDF              int
	ModelMeanSquare      float64
	FStat                float64
	FProb                float64
	ResidualSumOfSquares float64
	ResidualDF           int
	ResidualMeanSquare   float64
	TotalSumOfSquares    float64
	TotalDF              int
}

// Model is the immutable result of one Fit call. Every field is computed
// once; nothing is shared between models from different calls.
type Model struct {
	N                int           // observations used
	P                int           // design-matrix columns
	DegreesOfFreedom int           // N - P
	Coeffs           []Coefficient // one entry per column, in column order
	Fitted           []float64     // X * beta
	Residuals        []float64     // y - fitted
	MSError          float64       // residual sum of squares / degrees of freedom
	StdErr           float64       // standard error of the regression, sqrt(MSError)
	R2               float64
	AdjustedR2       float64
	ANOVA            *ANOVA
	OutcomeLabel     string

	coeffs []float64 // raw coefficient vector for prediction
}

func newCoefficients(coeffs, stdErrs, tStats, pValues, standardized []float64) []Coefficient {
	out := make([]Coefficient, len(coeffs))
	for j := range coeffs {
		out[j] = Coefficient{
			Label:        "X" + strconv.Itoa(j),
			Value:        coeffs[j],
			StdErr:       stdErrs[j],
			TStat:        tStats[j],
			PValue:       pValues[j],
			Standardized: standardized[j],
		}
	}
	return out
}

// CoeffValues returns a copy of the raw coefficient vector, in
// design-matrix column order.
func (m *Model) CoeffValues() []float64 {
	return append([]float64(nil), m.coeffs...)
}

// Predict computes predicted outcomes for a new design matrix with the
// same column structure as the one the model was fitted on. The model is
// not modified.
func (m *Model) Predict(xnew mat.Matrix) ([]float64, error) {
	n, p := xnew.Dims()
	if p != m.P {
		return nil, fmt.Errorf("%w: matrix has %d columns, model has %d", ErrColumnMismatch, p, m.P)
	}
	out := mat.NewVecDense(n, nil)
	out.MulVec(xnew, mat.NewVecDense(m.P, m.coeffs))
	predicted := make([]float64, n)
	for i := range predicted {
		predicted[i] = out.AtVec(i)
	}
	return predicted, nil
}

// PredictRow computes the predicted outcome for a single design-matrix
// row.
func (m *Model) PredictRow(xs []float64) (float64, error) {
	if len(xs) != m.P {
		return 0, fmt.Errorf("%w: row has %d values, model has %d columns", ErrColumnMismatch, len(xs), m.P)
	}
	var p float64
	for j, x := range xs {
		p += x * m.coeffs[j]
	}
	return p, nil
}

func formatFloatForFormula(f float64) string {
	if f < 0 {
		return fmt.Sprintf(" - %.4f", -f)
	}
	return fmt.Sprintf(" + %.4f", f)
}

// FormulaString renders the fitted equation, e.g.
// "Y = + 1.2000*age - 0.5000*group=b + 3.0000".
func (m *Model) FormulaString() string {
	var b strings.Builder
	b.WriteString(m.OutcomeLabel + " =")
	for _, c := range m.Coeffs {
		b.WriteString(formatFloatForFormula(c.Value))
		if c.Label != (Intercept{}).String() {
			b.WriteString("*" + c.Label)
		}
	}
	return b.String()
}
