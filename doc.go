// Package linmod fits ordinary least squares linear models and reports
// the usual inference statistics: coefficient estimates with standard
// errors, t statistics and two-sided p-values, residuals, R-squared and
// the ANOVA decomposition with its F-test.
//
// A model can be fitted from a raw design matrix:
//
//	x := mat.NewDense(5, 2, []float64{
//		1, 1,
//		1, 2,
//		1, 3,
//		1, 4,
//		1, 5,
//	})
//	model, err := linmod.Fit(x, []float64{2, 4, 6, 8, 10})
//
// or from an observation table through an explicit term list, which
// handles the intercept, dummy coding of categorical predictors and
// interaction expansion:
//
//	terms := []linmod.Term{
//		linmod.Intercept{},
//		linmod.Numeric{Col: "age"},
//		linmod.Categorical{Col: "group"},
//		linmod.Interaction{Terms: []linmod.Term{
//			linmod.Numeric{Col: "age"},
//			linmod.Categorical{Col: "group"},
//		}},
//	}
//	model, design, err := linmod.FitTable(tbl, "score", terms)
//
// The returned Design re-encodes further tables with the identical
// column structure, so predictions on new data line up with the fitted
// coefficients:
//
//	xNew, err := design.Encode(newTbl)
//	predicted, err := model.Predict(xNew)
//
// Coefficients are estimated through the thin SVD of the design matrix.
// A design that is not of full column rank is refused with
// ErrSingularDesign rather than silently regularized; the cutoff is
// relative to the largest singular value (see Fit).
//
// Fit is a pure function of its inputs. Models are immutable and calls
// share no state, so callers may fit concurrently, e.g. from the
// crossval subpackage's fold loop.
package linmod
