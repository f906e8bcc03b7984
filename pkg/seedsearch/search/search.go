// Package search implements the parallel search driver (spec section
// 4.F): sharding a seed range across workers, evaluating the weather
// oracle and condition evaluator for each seed, and streaming matches to
// a caller-supplied sink under an output cap.
package search

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"seedsearch/internal/driverutil"
	"seedsearch/pkg/seedsearch/condition"
	"seedsearch/pkg/seedsearch/weather"
)

// Match is a matching 32-bit game seed.
type Match = int32

// SearchRequest is the validated input to Search (spec section 3).
type SearchRequest struct {
	StartSeed       int32
	EndSeed         int32
	UseLegacyRandom bool
	Conditions      []weather.WeatherCondition
	OutputLimit     int
}

// Sink receives the four event kinds the driver emits (spec section
// 4.F). Implementations must be safe to call from multiple goroutines,
// or the driver must serialize its own calls into them — this driver
// does the latter: every Sink method is called while holding the result
// mutex or from a single reporting goroutine, never concurrently.
type Sink interface {
	Start(total int64)
	Progress(checked, total int64, percent, speedPerSecond, elapsedSeconds float64)
	Found(seed int32)
	Complete(totalFound int, elapsedSeconds float64)
}

// Summary is the outcome of a completed or cancelled search.
type Summary struct {
	Matches      []int32
	CheckedCount int64
	Elapsed      time.Duration
}

// Validate checks a request against spec section 6's rejection rules,
// failing fast before any worker starts.
func Validate(req SearchRequest) error {
	if req.StartSeed > req.EndSeed {
		return InvalidRequestError(fmt.Sprintf("startSeed %d must be <= endSeed %d", req.StartSeed, req.EndSeed))
	}
	if req.StartSeed < 0 {
		return InvalidRequestError("startSeed must be >= 0")
	}
	if req.OutputLimit < 1 {
		return InvalidRequestError(fmt.Sprintf("outputLimit %d must be >= 1", req.OutputLimit))
	}
	for i, c := range req.Conditions {
		if c.StartDay < 1 || c.StartDay > 28 {
			return InvalidRequestError(fmt.Sprintf("condition %d: startDay %d out of [1,28]", i, c.StartDay))
		}
		if c.EndDay < c.StartDay || c.EndDay > 28 {
			return InvalidRequestError(fmt.Sprintf("condition %d: endDay %d out of [startDay,28]", i, c.EndDay))
		}
		if c.MinRainDays < 0 {
			return InvalidRequestError(fmt.Sprintf("condition %d: minRainDays %d must be >= 0", i, c.MinRainDays))
		}
	}
	return nil
}

// driverState is the shared mutable state a Search run coordinates
// across workers: a mutex-protected result buffer, an atomic checked
// counter, an atomic last-reported counter for the progress CAS race,
// and an atomic stop flag. All other state is worker-local.
type driverState struct {
	mu      sync.Mutex
	results []int32

	checked      atomic.Int64
	lastReported atomic.Int64
	stop         atomic.Bool
	cancelLogged atomic.Bool
}

// Search shards [req.StartSeed, req.EndSeed] across a worker-count
// chosen per spec section 4.F.1, streams found/progress events to sink,
// and returns the sorted, deduplicated-by-construction match set. ctx
// cancellation sets the stop flag the same way reaching the output cap
// does; Search then returns the partial results gathered so far.
func Search(ctx context.Context, req SearchRequest, sink Sink) (Summary, error) {
	if err := Validate(req); err != nil {
		return Summary{}, err
	}

	rangeSize := int64(req.EndSeed) - int64(req.StartSeed) + 1
	workers := driverutil.WorkerCount(rangeSize)

	reportEvery := int64(1000)
	if rangeSize >= 100000 {
		reportEvery = 5000
	}

	state := &driverState{}
	start := time.Now()

	if sink != nil {
		sink.Start(rangeSize)
	}

	shardSize := rangeSize / int64(workers)
	if shardSize < 1 {
		shardSize = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := int64(req.StartSeed) + int64(w)*shardSize
		hi := lo + shardSize - 1
		if w == workers-1 || hi > int64(req.EndSeed) {
			hi = int64(req.EndSeed)
		}
		if lo > int64(req.EndSeed) {
			continue
		}

		wg.Add(1)
		go func(lo, hi int64) {
			defer wg.Done()
			runWorker(ctx, lo, hi, req, sink, state, reportEvery, rangeSize, start)
		}(lo, hi)
	}
	wg.Wait()

	elapsed := time.Since(start)
	checked := state.checked.Load()
	if sink != nil {
		sink.Progress(checked, rangeSize, 100.0, speed(checked, elapsed), elapsed.Seconds())
	}

	state.mu.Lock()
	matches := append([]int32(nil), state.results...)
	state.mu.Unlock()
	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })

	if sink != nil {
		sink.Complete(len(matches), elapsed.Seconds())
	}

	return Summary{Matches: matches, CheckedCount: checked, Elapsed: elapsed}, nil
}

// runWorker scans [lo, hi] ascending, evaluating the oracle and
// conditions for each seed. It never allocates on the hot path beyond
// Predict's own stack-local Calendar.
func runWorker(ctx context.Context, lo, hi int64, req SearchRequest, sink Sink, state *driverState, reportEvery, rangeSize int64, start time.Time) {
	for seed := lo; seed <= hi; seed++ {
		if state.stop.Load() {
			return
		}
		select {
		case <-ctx.Done():
			state.stop.Store(true)
			if state.cancelLogged.CompareAndSwap(false, true) {
				log.Print(CancellationRequestedError(fmt.Sprintf("checked %d of %d seeds before cancellation", state.checked.Load(), rangeSize)))
			}
			return
		default:
		}

		gameSeed := int32(seed)
		cal := weather.Predict(gameSeed, req.UseLegacyRandom)
		if condition.Matches(cal, req.Conditions) {
			if recordMatch(state, gameSeed, sink, req.OutputLimit) {
				state.checked.Add(1)
				return
			}
		}

		reportProgress(state, reportEvery, rangeSize, start, sink)
	}
}

// recordMatch appends a match under the cap and reports it to the sink.
// It returns true when the cap was just reached, signalling the caller
// to stop scanning.
func recordMatch(state *driverState, seed int32, sink Sink, limit int) bool {
	state.mu.Lock()
	if len(state.results) >= limit {
		state.mu.Unlock()
		return false
	}
	state.results = append(state.results, seed)
	count := len(state.results)
	if sink != nil {
		sink.Found(seed)
	}
	state.mu.Unlock()

	if count == limit {
		state.stop.Store(true)
		return true
	}
	return false
}

// reportProgress increments the checked counter and, every reportEvery
// checks, lets exactly one worker win a CAS race to report progress.
func reportProgress(state *driverState, reportEvery, rangeSize int64, start time.Time, sink Sink) {
	n := state.checked.Add(1)
	if n%reportEvery != 0 {
		return
	}
	last := state.lastReported.Load()
	if last == n {
		return
	}
	if !state.lastReported.CompareAndSwap(last, n) {
		return
	}
	if sink == nil {
		return
	}
	elapsed := time.Since(start)
	pct := float64(n) / float64(rangeSize) * 100
	state.mu.Lock()
	sink.Progress(n, rangeSize, pct, speed(n, elapsed), elapsed.Seconds())
	state.mu.Unlock()
}

func speed(checked int64, elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(checked) / seconds
}
