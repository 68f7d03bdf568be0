// Package pool provides the fixed-size worker pool that parallelizes
// fitness evaluation. Work items are assumed independent; the submitter is
// responsible for giving each task a disjoint result slot.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Submit once Shutdown has been requested.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is the completion handle for one submitted unit of work.
type Task struct {
	done chan struct{}
	err  error
}

// Wait blocks until the task has finished executing or ctx is cancelled,
// and reports the task's own error. The pool schedules and reports
// completion; it does not interpret results.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type queued struct {
	fn   func() error
	task *Task
}

// Pool runs submitted work on a fixed set of long-lived workers. Pending
// work is taken in FIFO order by whichever worker is idle; there is no
// priority and no per-worker affinity.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []queued
	closed bool
	wg     sync.WaitGroup
}

// New starts a pool of workers goroutines.
func New(workers int) (*Pool, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("worker count must be > 0, got %d", workers)
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p, nil
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for !p.closed && len(p.queue) == 0 {
			p.cond.Wait()
		}
		if p.closed && len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		item := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		item.task.err = execute(item.fn)
		close(item.task.done)
	}
}

// execute converts a panicking task into a task error so a failing unit of
// work cannot take its worker down with it.
func execute(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panic: %v", r)
		}
	}()
	return fn()
}

// Submit enqueues fn and returns its completion handle. It is safe to call
// concurrently with running workers.
func (p *Pool) Submit(fn func() error) (*Task, error) {
	if fn == nil {
		return nil, fmt.Errorf("work function is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}
	task := &Task{done: make(chan struct{})}
	p.queue = append(p.queue, queued{fn: fn, task: task})
	p.cond.Signal()
	return task, nil
}

// Shutdown marks the pool closed, lets already-queued work drain, then
// waits for every worker to exit. No task is dropped.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}
