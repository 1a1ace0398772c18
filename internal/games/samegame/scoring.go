package samegame

// MinGroup is the smallest removable group.
const MinGroup = 2

// Points returns the score for removing a group of n tiles: n*(n-1).
func Points(n int) int {
	if n < MinGroup {
		return 0
	}
	return n * (n - 1)
}
