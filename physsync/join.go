package physsync

import "sync"

// Join waits for two independently produced values and hands both to its
// ready callback exactly once, whichever arrives first. A failure fires the
// error callback once and suppresses the ready callback. Callbacks run on
// the goroutine that completed the join, outside the lock.
type Join[L, R any] struct {
	mu       sync.Mutex
	left     L
	right    R
	hasLeft  bool
	hasRight bool
	done     bool

	onReady func(L, R)
	onError func(error)
}

func NewJoin[L, R any](onReady func(L, R), onError func(error)) *Join[L, R] {
	return &Join[L, R]{onReady: onReady, onError: onError}
}

// SetLeft stores the left value. Later calls are ignored.
func (j *Join[L, R]) SetLeft(v L) {
	j.mu.Lock()
	if j.done || j.hasLeft {
		j.mu.Unlock()
		return
	}
	j.left, j.hasLeft = v, true
	j.complete()
}

// SetRight stores the right value. Later calls are ignored.
func (j *Join[L, R]) SetRight(v R) {
	j.mu.Lock()
	if j.done || j.hasRight {
		j.mu.Unlock()
		return
	}
	j.right, j.hasRight = v, true
	j.complete()
}

// Fail abandons the join. Only the first failure is reported.
func (j *Join[L, R]) Fail(err error) {
	j.mu.Lock()
	if j.done {
		j.mu.Unlock()
		return
	}
	j.done = true
	j.mu.Unlock()
	if j.onError != nil {
		j.onError(err)
	}
}

func (j *Join[L, R]) Done() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.done
}

// complete is called with mu held and releases it.
func (j *Join[L, R]) complete() {
	if !j.hasLeft || !j.hasRight {
		j.mu.Unlock()
		return
	}
	j.done = true
	l, r := j.left, j.right
	j.mu.Unlock()
	if j.onReady != nil {
		j.onReady(l, r)
	}
}
