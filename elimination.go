package linmod

import (
	"github.com/DancingOnAir/linmod/logger"
	"gonum.org/v1/gonum/stat/distuv"
)

// BackwardEliminate fits the full model for the given terms and then
// repeatedly drops the least significant removable term until every
// remaining term is significant at level alpha. Because a term may span
// several design-matrix columns (a dummy-coded categorical, an
// interaction), term significance is judged by the partial F-test of the
// model against the model without that term, not by a single coefficient.
//
// The intercept is never a candidate; forcedIndexes holds positions in
// terms that must stay in the model regardless of significance. The
// returned slice contains the model of every round, the final one last.
func BackwardEliminate(tbl *Table, outcome string, terms []Term, alpha float64, forcedIndexes map[int]struct{}) ([]*Model, error) {
	active := make([]int, 0, len(terms))
	for i := range terms {
		active = append(active, i)
	}

	var models []*Model
	for {
		full, _, err := FitTable(tbl, outcome, pick(terms, active))
		if err != nil {
			return models, err
		}
		models = append(models, full)

		if removableCount(terms, active, forcedIndexes) <= 1 {
			break
		}

		target, border := -1, alpha
		for pos, idx := range active {
			if !removable(terms, idx, forcedIndexes) {
				continue
			}
			prob, err := partialFProb(tbl, outcome, terms, active, pos, full)
			if err != nil {
				return models, err
			}
			if prob > border {
				target, border = pos, prob
			}
		}
		if target < 0 {
			break
		}

		logger.Info.Printf("Eliminate %s having p-value = %f", terms[active[target]], border)
		active = append(active[:target:target], active[target+1:]...)
	}
	return models, nil
}

// partialFProb is the p-value of the F-test comparing full against the
// model with the term at active[pos] removed.
func partialFProb(tbl *Table, outcome string, terms []Term, active []int, pos int, full *Model) (float64, error) {
	reducedIdx := make([]int, 0, len(active)-1)
	reducedIdx = append(reducedIdx, active[:pos]...)
	reducedIdx = append(reducedIdx, active[pos+1:]...)

	reduced, _, err := FitTable(tbl, outcome, pick(terms, reducedIdx))
	if err != nil {
		return 0, err
	}

	q := full.P - reduced.P
	if q < 1 {
		return 0, ErrInvalidTerm
	}
	fstat := ((reduced.ANOVA.ResidualSumOfSquares - full.ANOVA.ResidualSumOfSquares) / float64(q)) / full.MSError
	if fstat < 0 {
		fstat = 0
	}
	prob := distuv.F{
		D1: float64(q),
		D2: float64(full.DegreesOfFreedom),
	}.Survival(fstat)
	return prob, nil
}

func pick(terms []Term, idx []int) []Term {
	out := make([]Term, len(idx))
	for i, j := range idx {
		out[i] = terms[j]
	}
	return out
}

func removable(terms []Term, idx int, forced map[int]struct{}) bool {
	if _, ok := terms[idx].(Intercept); ok {
		return false
	}
	_, ok := forced[idx]
	return !ok
}

func removableCount(terms []Term, active []int, forced map[int]struct{}) int {
	var n int
	for _, idx := range active {
		if removable(terms, idx, forced) {
			n++
		}
	}
	return n
}
