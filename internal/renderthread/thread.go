// Package renderthread runs tasks on a single goroutine locked to one OS
// thread, the way device contexts (GL in particular) require.
package renderthread

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when posting to a closed thread.
var ErrClosed = errors.New("renderthread: closed")

// DefaultQueueSize is the task buffer used when New is given a size <= 0.
const DefaultQueueSize = 64

// Thread executes posted tasks in FIFO order on a goroutine locked to its
// OS thread.
//
// Thread safety: Post and Call are safe for concurrent use. Call must not
// be used from a task running on the thread itself.
type Thread struct {
	// mu orders Post against Close so no task is queued after the drain.
	mu sync.RWMutex

	// queue holds pending tasks.
	queue chan func()

	// done signals the worker to drain and stop.
	done chan struct{}

	// wg waits for the worker to finish.
	wg sync.WaitGroup

	// running indicates whether the thread is accepting work.
	running atomic.Bool

	// executed counts completed tasks.
	executed atomic.Uint64
}

// New starts a render thread with room for queueSize pending tasks.
func New(queueSize int) *Thread {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	t := &Thread{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
	t.running.Store(true)

	t.wg.Add(1)
	go t.loop()

	return t
}

// loop is the worker goroutine.
func (t *Thread) loop() {
	defer t.wg.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-t.done:
			t.drain()
			return
		case task := <-t.queue:
			t.run(task)
		}
	}
}

// drain executes all remaining tasks.
func (t *Thread) drain() {
	for {
		select {
		case task := <-t.queue:
			t.run(task)
		default:
			return
		}
	}
}

func (t *Thread) run(task func()) {
	if task == nil {
		return
	}
	task()
	t.executed.Add(1)
}

// Post queues fn to run later. It blocks only while the queue is full.
func (t *Thread) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.running.Load() {
		return ErrClosed
	}
	t.queue <- fn
	return nil
}

// Call runs fn on the thread and waits for it to finish.
func (t *Thread) Call(fn func()) error {
	finished := make(chan struct{})
	if err := t.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	<-finished
	return nil
}

// Executed returns the number of tasks run so far.
func (t *Thread) Executed() uint64 {
	return t.executed.Load()
}

// Close stops accepting work, runs everything already queued and stops
// the worker. Close is safe to call multiple times.
func (t *Thread) Close() {
	t.mu.Lock()
	if !t.running.CompareAndSwap(true, false) {
		t.mu.Unlock()
		return
	}
	close(t.done)
	t.mu.Unlock()
	t.wg.Wait()
}
