package domain

import (
	"fmt"
	"math/rand/v2"
)

// RandomColors generates n random display colors in #rrggbb form.
func RandomColors(n int) []string {
	colors := make([]string, 0, n)
	for i := 0; i < n; i++ {
		colors = append(colors, fmt.Sprintf("#%06x", rand.IntN(0x1000000)))
	}
	return colors
}
