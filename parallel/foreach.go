// Package parallel contains bounded goroutine fan-out helpers used by the batch evaluators.
package parallel

import "sync"

// ForEach calls body for every i in [0, length) with at most limit calls running at once.
func ForEach(length, limit int, body func(i int)) {
	ForEachChunk(length, 1, limit, func(lo, hi int) {
		body(lo)
	})
}

// ForEachChunk splits [0, length) into consecutive ranges of at most chunk
// items and calls body(lo, hi) for each range, with at most limit calls
// running at once. A single range is run on the calling goroutine.
func ForEachChunk(length, chunk, limit int, body func(lo, hi int)) {
	if length <= 0 {
		return // No iterations to perform
	}
	if chunk <= 0 {
		chunk = length
	}
	if limit <= 0 {
		limit = 1 // Default to 1 if limit is zero or negative
	}
	if chunk >= length {
		body(0, length)
		return
	}

	sem := make(chan struct{}, limit) // Semaphore with buffer size 'limit'
	var wg sync.WaitGroup

	for lo := 0; lo < length; lo += chunk {
		hi := lo + chunk
		if hi > length {
			hi = length
		}
		wg.Add(1)
		sem <- struct{}{} // Acquire semaphore
		go func(lo, hi int) {
			defer wg.Done()
			defer func() { <-sem }() // Release semaphore after function exits

			body(lo, hi)
		}(lo, hi)
	}

	wg.Wait()
}

// Chunks reports how many ranges ForEachChunk makes for length and chunk.
func Chunks(length, chunk int) int {
	if length <= 0 {
		return 0
	}
	if chunk <= 0 || chunk >= length {
		return 1
	}
	return (length + chunk - 1) / chunk
}
