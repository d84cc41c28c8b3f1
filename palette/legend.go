package palette

import "image/color"

// Table samples scheme at n evenly spaced points from 0 to 1, e.g. to draw a legend.
func Table(scheme Scheme, n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []color.RGBA{GetColor(scheme, 0)}
	}
	table := make([]color.RGBA, n)
	for i := range table {
		table[i] = GetColor(scheme, float64(i)/float64(n-1))
	}
	return table
}
