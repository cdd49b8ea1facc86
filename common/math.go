package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// AbsInt returns |v|.
func AbsInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Manhattan returns |x1-x2| + |y1-y2|.
func Manhattan(x1, y1, x2, y2 int) int {
	return AbsInt(x1-x2) + AbsInt(y1-y2)
}

// Distance returns the euclidean length of (dx, dy).
func Distance(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}
