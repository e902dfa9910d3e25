package vegan_test

import (
	"context"
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	vegan "github.com/MichaelChirico/vegan"
	"github.com/MichaelChirico/vegan/linalg"
)

func ExampleGetF() {
	ctx := context.Background()

	// Response matrix, 4 sites × 2 species.
	e := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		4, 8,
	})

	// Intercept-only model: the fit replicates each column mean, so the
	// statistic is invariant under row permutation.
	model, err := linalg.Decompose(mat.NewDense(4, 1, []float64{1, 1, 1, 1}), 0)
	if err != nil {
		log.Fatal(err)
	}

	perms := [][]int{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
	}

	res, err := vegan.GetF(ctx, perms, e, model)
	if err != nil {
		log.Fatal(err)
	}
	for k := 0; k < res.Len(); k++ {
		fmt.Printf("permutation %d: %.2f\n", k, res.Fitted(k))
	}
	// Output:
	// permutation 0: 125.00
	// permutation 1: 125.00
}
