package channel

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/psdpack/psdpack/compression"
)

// Each row of a framed channel reads only its own table entry and its own
// compressed slice, and writes only its own output slice, so rows can be
// processed concurrently without locking once the table is parsed.

// ParallelConfig configures parallel row processing behavior.
type ParallelConfig struct {
	// NumWorkers is the number of worker goroutines. 0 means runtime.GOMAXPROCS(0).
	NumWorkers int

	// GrainSize is the minimum rows per worker before parallelization.
	// If total rows < GrainSize * NumWorkers, runs sequentially.
	GrainSize int
}

// DefaultParallelConfig returns the default parallel configuration.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		NumWorkers: 0,
		GrainSize:  16, // Per-row work is small; avoid goroutines for tiny channels
	}
}

var (
	parallelConfig   = DefaultParallelConfig()
	parallelConfigMu sync.RWMutex
)

// SetParallelConfig sets the global parallel configuration.
func SetParallelConfig(config ParallelConfig) {
	parallelConfigMu.Lock()
	defer parallelConfigMu.Unlock()
	parallelConfig = config
}

// GetParallelConfig returns the current parallel configuration.
func GetParallelConfig() ParallelConfig {
	parallelConfigMu.RLock()
	defer parallelConfigMu.RUnlock()
	return parallelConfig
}

func effectiveWorkers(config ParallelConfig) int {
	if config.NumWorkers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return config.NumWorkers
}

// parallelForWithError runs fn(i) for i in [0, n) in parallel and returns
// the first error encountered (order not guaranteed). Runs sequentially
// when n is small or only one worker is configured.
func parallelForWithError(n int, fn func(i int) error) error {
	config := GetParallelConfig()
	numWorkers := effectiveWorkers(config)

	if n <= config.GrainSize*numWorkers || numWorkers == 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error
	chunkSize := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				if err := fn(i); err != nil {
					errOnce.Do(func() {
						firstErr = err
					})
					return
				}
			}
		}(start, end)
	}

	wg.Wait()
	return firstErr
}

// DecodeParallel is Decode with rows decompressed concurrently. Output is
// identical to Decode for the same input.
func DecodeParallel(compressed []byte, height, width, bytesPerSample int, v Version) ([]byte, error) {
	rows, err := parseRows(compressed, height, v)
	if err != nil {
		return nil, err
	}
	rowSize, total, err := channelSize(height, width, bytesPerSample)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, total)
	err = parallelForWithError(height, func(i int) error {
		return decodeRow(rows[i], dst[i*rowSize:(i+1)*rowSize], i)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// EncodeParallel is Encode with rows compressed concurrently. Output is
// identical to Encode for the same input.
func EncodeParallel(rows [][]byte, v Version) ([]byte, error) {
	if !v.Valid() {
		return nil, ErrInvalidVersion
	}
	for _, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, ErrRaggedRows
		}
	}

	packed := make([][]byte, len(rows))
	err := parallelForWithError(len(rows), func(i int) error {
		p := compression.PackBitsCompress(rows[i])
		if uint64(len(p)) > v.maxRowLength() {
			return fmt.Errorf("channel: row %d: %w", i, ErrRowTooLarge)
		}
		packed[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	total := len(rows) * v.RowLengthSize()
	for _, p := range packed {
		total += len(p)
	}
	return assemble(packed, total, v)
}
