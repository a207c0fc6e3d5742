package moderation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Measures the real startup path (embedded dictionaries -> automaton) and
// the per-message censoring cost once the automaton is warm.
func Test_Moderation_Benchmark(t *testing.T) {
	req := require.New(t)

	// --- Phase 1: LOADING ---
	startLoad := time.Now()
	list, err := LoadWords()
	req.NoError(err)
	fmt.Printf("✅ Loading %d embedded words: %v\n", len(list.Words), time.Since(startLoad))

	// --- Phase 2: BUILDING AHO-CORASICK ---
	startBuild := time.Now()
	mod, err := NewModerator(list.Words, '*')
	req.NoError(err)
	fmt.Printf("✅ Building AC Automaton: %v\n", time.Since(startBuild))
	fmt.Printf("🚀 Total startup time for moderation: %v\n", time.Since(startLoad))

	// --- Phase 3: CENSORING ---
	message := "Hello everyone, what a m0r.o.n this badger is, see you at eight!"
	iterations := 10_000
	startCensor := time.Now()
	for i := 0; i < iterations; i++ {
		mod.Censor(message)
	}
	elapsed := time.Since(startCensor)
	fmt.Printf("🚀 Censoring %d messages: %v (%v per message)\n",
		iterations, elapsed, elapsed/time.Duration(iterations))
}
