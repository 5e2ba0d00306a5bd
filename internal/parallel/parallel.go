// Package parallel fans independent per-item kernel work out across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on goroutines per call.
	MinChunkSize int  // Minimum items per goroutine.
}

// DefaultConfig uses every CPU. Items handed to For are whole samples of a
// batch, so a chunk of one item is already worth a goroutine.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// Sequential returns a config that runs everything on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// For executes f(i) for i in [0, n). Calls for distinct i may run
// concurrently, so f must only write state owned by item i.
func For(n int, f func(i int), cfg Config) {
	if n <= 0 {
		return
	}
	minChunk := max(cfg.MinChunkSize, 1)
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*minChunk {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, minChunk)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
