package linmod_test

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/DancingOnAir/linmod"
)

func ExampleFit() {
	x := mat.NewDense(5, 2, []float64{
		1, 1,
		1, 2,
		1, 3,
		1, 4,
		1, 5,
	})
	y := []float64{2, 4, 6, 8, 10}

	model, err := linmod.Fit(x, y)
	if err != nil {
		log.Fatal(err)
	}

	predicted, err := model.PredictRow([]float64{1, 6})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("slope = %.2f\n", model.Coeffs[1].Value)
	fmt.Printf("R2 = %.2f\n", model.R2)
	fmt.Printf("prediction at x=6: %.1f\n", predicted)
	// Output:
	// slope = 2.00
	// R2 = 1.00
	// prediction at x=6: 12.0
}

func ExampleFitTable() {
	tbl := linmod.NewTable()
	if err := tbl.AddNumeric("hours", []float64{1, 2, 3, 4, 5, 6}); err != nil {
		log.Fatal(err)
	}
	if err := tbl.AddNumeric("score", []float64{52, 54, 56, 58, 60, 62}); err != nil {
		log.Fatal(err)
	}

	terms := []linmod.Term{linmod.Intercept{}, linmod.Numeric{Col: "hours"}}
	model, _, err := linmod.FitTable(tbl, "score", terms)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(model.FormulaString())
	// Output:
	// score = + 50.0000 + 2.0000*hours
}
