package schema

import "fmt"

// ValidateQuantifiers adjusts a (min, max) item/property/digit count
// bound pair by startOffset (the number of repetitions a fixed prefix
// already accounts for) and checks the result is satisfiable. Either
// bound may be nil (unbounded on that side).
func ValidateQuantifiers(minBound, maxBound *uint64, startOffset uint64) (*uint64, *uint64, error) {
	var min, max *uint64
	if minBound != nil {
		v := satSub(*minBound, startOffset)
		min = &v
	}
	if maxBound != nil {
		v := satSub(*maxBound, startOffset)
		max = &v
	}
	if min != nil && max != nil && *max < *min {
		return nil, nil, fmt.Errorf("schema: max bound %d is less than min bound %d", *max, *min)
	}
	return min, max, nil
}

func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// GetNumItemsPattern returns the "{min,max}"-style repetition-count
// suffix for minItems/maxItems-style bounds already reduced by the
// fixed-length prefix the caller already emitted (hence the -1 on both
// ends below: one occurrence is already accounted for by that prefix).
// It returns "" if maxItems rules out any further items at all.
func GetNumItemsPattern(minItems, maxItems *uint64) (string, bool) {
	if maxItems != nil && *maxItems < 1 {
		return "", false
	}
	min := uint64(0)
	if minItems != nil && *minItems > 0 {
		min = *minItems - 1
	}
	if maxItems == nil {
		return fmt.Sprintf("{%d,}", min), true
	}
	return fmt.Sprintf("{%d,%d}", min, *maxItems-1), true
}
