package cmp

func SliceEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	for i, x := range a {
		if x != b[i] {
			return false
		}
	}

	return true
}

func SliceEqual[T interface{ Equal(T) bool }](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	for i, x := range a {
		if !x.Equal(b[i]) {
			return false
		}
	}

	return true
}
