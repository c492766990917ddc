package hypergnn

import "fmt"

// DimensionMismatchError reports an embedding whose length does not match
// the dimensionality a layer expects.
type DimensionMismatchError struct {
	ID   string
	Got  int
	Want int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding for %q has dimension %d, layer expects %d", e.ID, e.Got, e.Want)
}
