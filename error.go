package linmod

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch signals that the design matrix and the outcome vector disagree on the number of rows.
	ErrDimensionMismatch = errors.New("row count of the design matrix does not match the outcome length")
	// ErrSingularDesign signals that the design matrix is not of full column rank.
	ErrSingularDesign = errors.New("design matrix is singular or near-singular")
	// ErrDegreesOfFreedom signals that there are no residual degrees of freedom left (N - P <= 0).
	ErrDegreesOfFreedom = errors.New("degrees of freedom exhausted")
	// ErrColumnMismatch signals that a prediction matrix disagrees with the fitted model's column structure.
	ErrColumnMismatch = errors.New("column count does not match the fitted model")
	// ErrNoTerms signals that a model was requested with an empty term list.
	ErrNoTerms = errors.New("no model terms")
	// ErrUnknownColumn signals that a term refers to a column the table does not have.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrUnknownLevel signals a categorical value that was not present when the design was bound.
	ErrUnknownLevel = errors.New("unknown categorical level")
	// ErrInvalidTerm signals a term descriptor that cannot be materialized.
	ErrInvalidTerm = errors.New("invalid model term")
	// ErrDuplicateColumn signals that a column name was added to a table twice.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrColumnType signals that a column was used with the wrong kind (numeric vs. categorical).
	ErrColumnType = errors.New("column has the wrong type")
)

// RankError reports a rank-deficient design matrix. It unwraps to
// ErrSingularDesign so callers can test with errors.Is, and carries the
// detected rank and the condition number as a hint for diagnosing
// collinear columns.
type RankError struct {
	Rank      int     // detected numerical rank
	Cols      int     // number of design-matrix columns
	Condition float64 // ratio of the largest to the smallest singular value
}

func (e *RankError) Error() string {
	return fmt.Sprintf("%v: rank %d < %d columns (condition number %.4g)",
		ErrSingularDesign, e.Rank, e.Cols, e.Condition)
}

func (e *RankError) Unwrap() error {
	return ErrSingularDesign
}
