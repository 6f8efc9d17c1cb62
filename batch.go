package drcs2bmp

import "sync"

// ConvertAll runs the pipeline over a whole dictionary using the
// converter's worker count. Conversions share no mutable state beyond
// the stats counters, so entries are fanned out over a fixed pool of
// goroutines. Results come back in input order with each entry's
// substitute character attached, which keeps downstream mapping-file
// writes deterministic no matter how the pool schedules.
func (c *Converter) ConvertAll(entries []DictEntry) []Result {
	results := make([]Result, len(entries))
	if len(entries) == 0 {
		return results
	}
	workers := c.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) {
		workers = len(entries)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r := c.Convert(entries[i].DRCS)
				r.Alternative = entries[i].Alternative
				results[i] = r
			}
		}()
	}
	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
