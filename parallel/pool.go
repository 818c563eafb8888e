package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// chunksPerWorker oversplits Range so that uneven tasks still balance.
const chunksPerWorker = 4

type Pool struct {
	workers  int
	wg       sync.WaitGroup
	workChan chan func()
	close    func()
}

// Start spawns numWorkers goroutines. With numWorkers < 1 it uses
// GOMAXPROCS; a single-worker pool runs every task on the caller.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		close:   func() {},
	}

	if numWorkers > 1 {
		pool.workChan = make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range pool.workChan {
					f()
				}
			})
		}

		pool.close = sync.OnceFunc(func() {
			close(pool.workChan)
			pool.wg.Wait()
		})
	}

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Do submits f. It must not be called after Close.
func (p *Pool) Do(f func()) {
	if p.workChan == nil {
		f()
		return
	}
	p.workChan <- f
}

// Range splits [0, n) into contiguous chunks, runs fn on each chunk and
// returns once every chunk is done. The caller works through chunks too,
// so Range may be called from a task running on the same pool.
func (p *Pool) Range(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	chunks := min(p.workers*chunksPerWorker, n)
	if p.workChan == nil || chunks == 1 {
		fn(0, n)
		return
	}

	size := (n + chunks - 1) / chunks
	chunks = (n + size - 1) / size

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(chunks)
	run := func() {
		for {
			c := int(next.Add(1)) - 1
			if c >= chunks {
				return
			}
			start := c * size
			fn(start, min(start+size, n))
			wg.Done()
		}
	}

	// Helpers that find the queue full, or start late, simply find no
	// chunk left.
	for range min(p.workers, chunks) - 1 {
		select {
		case p.workChan <- run:
		default:
		}
	}
	run()
	wg.Wait()
}

// Close stops the workers after the queued tasks finish. It is safe to
// call more than once.
func (p *Pool) Close() {
	p.close()
}
