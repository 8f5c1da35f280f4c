package forms

import (
	"context"
	"sync"
)

// Result is the outcome of validating one form in a batch
type Result struct {
	Index  int
	Valid  bool
	Errors FieldErrors
}

// ValidateBolsistas validates many registration forms concurrently. Results
// keep the input order. It stops early only when ctx is cancelled.
func ValidateBolsistas(ctx context.Context, forms []Bolsista) ([]Result, error) {
	results := make([]Result, len(forms))

	var wg sync.WaitGroup
	for i := range forms {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			errs := forms[idx].Validate()
			results[idx] = Result{Index: idx, Valid: len(errs) == 0, Errors: errs}
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
