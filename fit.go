package linmod

import (
	"fmt"
	"math"

	"github.com/DancingOnAir/linmod/logger"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// rankEpsilon is the relative singular-value cutoff used to detect rank
// deficiency: a singular value below smax * rankEpsilon * max(N, P) does
// not count toward the rank. This matches the conventional pseudo-inverse
// truncation threshold.
const rankEpsilon = 2.220446049250313e-16 // IEEE 754 double machine epsilon

// Fit estimates an ordinary least squares model of y on the design matrix
// x. The coefficients solve the normal equations through the thin SVD of
// x, which doubles as the rank check: a rank-deficient design yields
// ErrSingularDesign (as a *RankError) instead of arbitrary coefficients.
//
// The returned model is complete and immutable; on error no partial
// result is returned. Fit reads its inputs and shares nothing, so
// concurrent calls are safe.
func Fit(x mat.Matrix, y []float64) (*Model, error) {
	n, p := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d outcomes", ErrDimensionMismatch, n, len(y))
	}
	if p == 0 {
		return nil, ErrNoTerms
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: SVD failed to converge", ErrSingularDesign)
	}
	sv := svd.Values(nil) // descending
	smax := sv[0]
	tol := smax * rankEpsilon * float64(max(n, p))
	rank := 0
	for _, s := range sv {
		if s > tol {
			rank++
		}
	}
	if rank < p {
		condition := math.Inf(1)
		if smin := sv[len(sv)-1]; smin > 0 {
			condition = smax / smin
		}
		rankErr := &RankError{Rank: rank, Cols: p, Condition: condition}
		logger.Err.Println(rankErr)
		return nil, rankErr
	}

	df := n - p
	if df <= 0 {
		return nil, fmt.Errorf("%w: %d observations, %d coefficients", ErrDegreesOfFreedom, n, p)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// beta = V * inv(Sigma) * U^T * y
	uty := make([]float64, p)
	for j := 0; j < p; j++ {
		var s float64
		for i := 0; i < n; i++ {
			s += u.At(i, j) * y[i]
		}
		uty[j] = s
	}
	coeffs := make([]float64, p)
	for j := 0; j < p; j++ {
		var s float64
		for k := 0; k < p; k++ {
			s += v.At(j, k) * uty[k] / sv[k]
		}
		coeffs[j] = s
	}

	fittedVec := mat.NewVecDense(n, nil)
	fittedVec.MulVec(x, mat.NewVecDense(p, coeffs))
	fitted := make([]float64, n)
	residuals := make([]float64, n)
	var ssError float64
	for i := 0; i < n; i++ {
		fitted[i] = fittedVec.AtVec(i)
		residuals[i] = y[i] - fitted[i]
		ssError += residuals[i] * residuals[i]
	}

	msError := ssError / float64(df)
	stdErr := math.Sqrt(msError)

	// diag((X^T X)^-1) = sum_k V[j,k]^2 / sigma_k^2, straight from the SVD.
	stdErrs := make([]float64, p)
	tStats := make([]float64, p)
	for j := 0; j < p; j++ {
		var diag float64
		for k := 0; k < p; k++ {
			r := v.At(j, k) / sv[k]
			diag += r * r
		}
		stdErrs[j] = stdErr * math.Sqrt(diag)
		tStats[j] = coeffs[j] / stdErrs[j]
	}

	tDistribution := distuv.StudentsT{
		Mu:    0,
		Sigma: 1,
		Nu:    float64(df),
	}
	pValues := make([]float64, p)
	for j, tstat := range tStats {
		pValues[j] = tDistribution.Survival(math.Abs(tstat)) * 2
	}

	meanY := stat.Mean(y, nil)
	var ssTotal float64
	for _, yi := range y {
		d := yi - meanY
		ssTotal += d * d
	}
	ssModel := ssTotal - ssError

	// Standardized coefficients, in outcome standard deviations per
	// predictor standard deviation. Constant columns (the intercept) and
	// a constant outcome standardize to 0.
	sdY := stat.StdDev(y, nil)
	standardized := make([]float64, p)
	if sdY > 0 {
		colBuf := make([]float64, n)
		for j := 0; j < p; j++ {
			mat.Col(colBuf, j, x)
			standardized[j] = coeffs[j] * stat.StdDev(colBuf, nil) / sdY
		}
	}

	// A constant outcome has no variance to explain; define R^2 = 0
	// rather than 0/0.
	r2, adjustedR2 := 0.0, 0.0
	if ssTotal > 0 {
		r2 = ssModel / ssTotal
		if n > 1 {
			adjustedR2 = 1 - (ssError/float64(df))/(ssTotal/float64(n-1))
		}
	}

	return &Model{
		N:                n,
		P:                p,
		DegreesOfFreedom: df,
		Coeffs:           newCoefficients(coeffs, stdErrs, tStats, pValues, standardized),
		Fitted:           fitted,
		Residuals:        residuals,
		MSError:          msError,
		StdErr:           stdErr,
		R2:               r2,
		AdjustedR2:       adjustedR2,
		ANOVA:            newANOVA(ssModel, ssError, ssTotal, n, p),
		OutcomeLabel:     "Y",
		coeffs:           coeffs,
	}, nil
}

func newANOVA(ssModel, ssError, ssTotal float64, n, p int) *ANOVA {
	modelDF := p - 1 // term columns beyond the constant
	residualDF := n - p
	a := &ANOVA{
		ModelSumOfSquares:    ssModel,
		ModelDF:              modelDF,
		ResidualSumOfSquares: ssError,
		ResidualDF:           residualDF,
		ResidualMeanSquare:   ssError / float64(residualDF),
		TotalSumOfSquares:    ssTotal,
		TotalDF:              n - 1,
		FStat:                math.NaN(),
		FProb:                math.NaN(),
	}
	if modelDF < 1 || ssTotal <= 0 {
		a.ModelMeanSquare = math.NaN()
		return a
	}
	a.ModelMeanSquare = ssModel / float64(modelDF)
	a.FStat = a.ModelMeanSquare / a.ResidualMeanSquare
	a.FProb = distuv.F{
		D1: float64(modelDF),
		D2: float64(residualDF),
	}.Survival(a.FStat)
	return a
}

// FitTable builds the design matrix of tbl for the given terms, extracts
// the named numeric outcome column, and fits the model. The returned
// Design can encode further tables with the identical column structure
// for prediction.
func FitTable(tbl *Table, outcome string, terms []Term) (*Model, *Design, error) {
	y, err := tbl.Numeric(outcome)
	if err != nil {
		return nil, nil, err
	}
	design, err := DesignMatrix(tbl, terms)
	if err != nil {
		return nil, nil, err
	}
	model, err := Fit(design.X(), y)
	if err != nil {
		return nil, nil, err
	}
	model.OutcomeLabel = outcome
	for j, label := range design.labels {
		model.Coeffs[j].Label = label
	}
	return model, design, nil
}
