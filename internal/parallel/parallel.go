// Package parallel provides chunked parallel-for helpers used by the CPU
// interpreter's element-wise kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // whether parallel execution is enabled
	NumWorkers   int  // number of worker goroutines
	MinChunkSize int  // minimum items per goroutine to amortize overhead
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// Sequential returns a config that disables worker goroutines.
func Sequential() Config {
	return Config{}
}

// For executes f(i) for i in [0, n), in parallel chunks when the config
// allows and n is large enough, sequentially otherwise. f must be safe to
// call concurrently for distinct i.
func For(n int, cfg Config, f func(i int)) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
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
