// Package vegan implements the permutation-test kernel behind constrained
// ordination significance tests (CCA/RDA style analyses).
//
// Given a precomputed QR factorization of a model matrix, GetF applies many
// row permutations to a response matrix, projects each permuted copy through
// the factorization (optionally after removing a partial/conditioning
// model), and reduces the fitted and residual blocks to one statistic pair
// per permutation. The caller turns those pairs into F ratios and a
// permutation p value.
//
// # Quick Start
//
//	ctx := context.Background()
//	model, _ := linalg.Decompose(x, 0)   // QR of the model matrix
//	res, err := vegan.GetF(ctx, perms, e, model)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for k := 0; k < res.Len(); k++ {
//	    fmt.Println(res.Fitted(k))
//	}
//
// Permutation rows are 1-based, one bijection of {1,…,nr} per row; GetF
// works on a private 0-based copy and never mutates the caller's table.
//
// Conditioning variables are removed first with WithPartial, and
// WithFirstEigenvalue switches the statistic from the total eigenvalue sum
// to the leading eigenvalue (via the largest singular value of the fitted
// block).
//
// Permutations are independent, so the loop fans out across workers by
// default; WithWorkers caps the parallelism. A failure of an underlying
// numeric primitive aborts the whole batch with no partial results — the
// statistics would not be trustworthy.
package vegan
