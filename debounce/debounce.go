// Package debounce coalesces bursts of triggers into single runs on one
// worker goroutine.
package debounce

import (
	"container/heap"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/colorhl"
)

// ewmaWeight is the weight of the newest run duration in the average.
const ewmaWeight = 0.25

// Scheduler runs at most one queued function per target.
//
// The delay before a run is twice the recent average run duration, clamped
// to [Min, Max]. Rescheduling a target replaces its function and pushes its
// deadline out, but never beyond MaxLatency after the first trigger of the
// burst.
type Scheduler struct {
	cfg    colorhl.Debounce
	logger *slog.Logger

	mu      sync.Mutex
	queue   jobQueue
	targets map[string]*job
	avg     time.Duration
	closed  bool

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

type job struct {
	target   string
	fn       func()
	first    time.Time
	deadline time.Time
	index    int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger for run timings. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// New starts a scheduler. Call Close to stop its worker.
func New(cfg colorhl.Debounce, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		targets: make(map[string]*job),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// Delay returns the delay a new trigger would get now.
func (s *Scheduler) Delay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delay()
}

func (s *Scheduler) delay() time.Duration {
	return min(max(2*s.avg, s.cfg.Min), s.cfg.Max)
}

// Schedule queues fn for target, replacing any function already queued
// for it. Calls after Close are ignored.
func (s *Scheduler) Schedule(target string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	now := time.Now()
	j, ok := s.targets[target]
	if !ok {
		j = &job{target: target, first: now}
		s.targets[target] = j
	}
	j.fn = fn
	j.deadline = now.Add(s.delay())
	if limit := j.first.Add(s.cfg.MaxLatency); s.cfg.MaxLatency > 0 && j.deadline.After(limit) {
		j.deadline = limit
	}
	if ok {
		heap.Fix(&s.queue, j.index)
	} else {
		heap.Push(&s.queue, j)
	}
	s.signal()
}

// CancelAll drops the queued function for target. A run already in
// progress completes.
func (s *Scheduler) CancelAll(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.targets[target]; ok {
		heap.Remove(&s.queue, j.index)
		delete(s.targets, target)
	}
}

// Pending reports whether a function is queued for target.
func (s *Scheduler) Pending(target string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.targets[target]
	return ok
}

// Close stops the worker after any run in progress. Queued functions are
// dropped.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.stopped
		return
	}
	s.closed = true
	s.queue = nil
	clear(s.targets)
	s.mu.Unlock()

	close(s.done)
	<-s.stopped
}

func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run() {
	defer close(s.stopped)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		j, wait := s.next()
		if j != nil {
			s.exec(j)
			continue
		}
		if wait >= 0 {
			timer.Reset(wait)
		} else {
			timer.Reset(time.Hour)
		}
		select {
		case <-s.done:
			return
		case <-s.wake:
		case <-timer.C:
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}
}

// next pops a due job, or reports how long until the earliest deadline.
// wait is negative when nothing is queued.
func (s *Scheduler) next() (*job, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || len(s.queue) == 0 {
		return nil, -1
	}
	head := s.queue[0]
	if wait := time.Until(head.deadline); wait > 0 {
		return nil, wait
	}
	heap.Pop(&s.queue)
	delete(s.targets, head.target)
	return head, 0
}

func (s *Scheduler) exec(j *job) {
	start := time.Now()
	j.fn()
	took := time.Since(start)

	s.mu.Lock()
	s.avg += time.Duration(ewmaWeight * float64(took-s.avg))
	delay := s.delay()
	s.mu.Unlock()

	s.logger.Debug("debounced run",
		"target", j.target,
		"took", took,
		"latency", start.Sub(j.first),
		"next_delay", delay,
	)
}

// jobQueue is a min-heap of jobs by deadline.
type jobQueue []*job

func (q jobQueue) Len() int { return len(q) }

func (q jobQueue) Less(i, k int) bool { return q[i].deadline.Before(q[k].deadline) }

func (q jobQueue) Swap(i, k int) {
	q[i], q[k] = q[k], q[i]
	q[i].index = i
	q[k].index = k
}

func (q *jobQueue) Push(x any) {
	j := x.(*job)
	j.index = len(*q)
	*q = append(*q, j)
}

func (q *jobQueue) Pop() any {
	old := *q
	n := len(old)
	j := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return j
}
