package poster

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Range is a closed interval over T. The zero value is an empty (invalid)
// range that becomes valid on the first call to Extend.
type Range[T Number] struct {
	lower T
	upper T
	valid bool
}

func RangeFromPair[T Number](a, b T) Range[T] {
	var r Range[T]
	r.Extend(a)
	r.Extend(b)
	return r
}

func (r *Range[T]) Clear() {
	var zero T
	r.lower = zero
	r.upper = zero
	r.valid = false
}

func (r Range[T]) IsValid() bool {
	return r.valid
}

func (r Range[T]) Lower() T {
	return r.lower
}

func (r Range[T]) Upper() T {
	return r.upper
}

// Diameter returns upper-lower, or zero for an invalid range.
func (r Range[T]) Diameter() T {
	if !r.valid {
		var zero T
		return zero
	}
	return r.upper - r.lower
}

func (r Range[T]) Contains(v T) bool {
	if !r.valid {
		return false
	}
	return r.lower <= v && v <= r.upper
}

func (r *Range[T]) Extend(v T) {
	if !r.valid {
		r.lower, r.upper, r.valid = v, v, true
		return
	}
	r.lower = min(r.lower, v)
	r.upper = max(r.upper, v)
}

func (r Range[T]) Interpolate(ratio float64) (T, error) {
	if !r.valid {
		var zero T
		return zero, fmt.Errorf("%w: cannot interpolate empty range", ErrInvalidRange)
	}
	return r.lower + T(ratio*float64(r.upper-r.lower)), nil
}

// RelativePosition gives the position of v in the range, clamped to [0, 1].
func (r Range[T]) RelativePosition(v T) (float64, error) {
	if !r.valid {
		return 0, fmt.Errorf("%w: cannot get relative position in empty range", ErrInvalidRange)
	}
	if v <= r.lower {
		return 0, nil
	}
	if v >= r.upper {
		return 1, nil
	}
	diff := r.upper - r.lower
	if diff == 0 {
		return 0, nil
	}
	return float64(v-r.lower) / float64(diff), nil
}

func (r Range[T]) String() string {
	if !r.valid {
		return "[]"
	}
	return fmt.Sprintf("[%v, %v]", r.lower, r.upper)
}
