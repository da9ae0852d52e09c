package vcf2eigenstrat_api

import "cmp"

// OrderedJoin zips two position-sorted streams into a stream of paired
// records. Both next functions must yield their records in non-decreasing
// key order and return nil when exhausted; out-of-order input produces
// undefined pairing. For every emitted pair at least one side is non-nil:
// a lone left when the key only occurs on the left, a lone right when it
// only occurs on the right, and both when the keys are equal. The join
// keeps one buffered record per side and never materializes a stream.
func OrderedJoin[L any, R any, K cmp.Ordered](
	nextLeft func() (*L, error),
	nextRight func() (*R, error),
	keyLeft func(*L) K,
	keyRight func(*R) K,
	visit func(left *L, right *R) error,
) error {
	left, err := nextLeft()
	if err != nil {
		return err
	}
	right, err := nextRight()
	if err != nil {
		return err
	}

	for left != nil || right != nil {
		switch {
		case right == nil || (left != nil && keyLeft(left) < keyRight(right)):
			if err := visit(left, nil); err != nil {
				return err
			}
			if left, err = nextLeft(); err != nil {
				return err
			}
		case left == nil || keyLeft(left) > keyRight(right):
			if err := visit(nil, right); err != nil {
				return err
			}
			if right, err = nextRight(); err != nil {
				return err
			}
		default:
			if err := visit(left, right); err != nil {
				return err
			}
			if left, err = nextLeft(); err != nil {
				return err
			}
			if right, err = nextRight(); err != nil {
				return err
			}
		}
	}
	return nil
}
