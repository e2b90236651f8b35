package transcript

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	DefaultPerWord  = 120 * time.Millisecond
	DefaultMaxDelay = 3 * time.Second
)

// TypingDelay is min(max, words(text) * perWord). Empty text yields zero.
func TypingDelay(text string, perWord, max time.Duration) time.Duration {
	delay := time.Duration(len(strings.Fields(text))) * perWord
	if delay > max {
		return max
	}
	return delay
}

// Sleep blocks for d or until ctx is done. A zero d still yields to the
// scheduler once through the timer.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TypingTask keeps the placeholder visible for the lifetime of one turn.
// Overlapping turns share the single placeholder; it disappears when the last
// task stops.
type TypingTask struct {
	t      *Transcript
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// BeginTyping starts a task whose context ends with ctx or with Stop.
func (t *Transcript) BeginTyping(ctx context.Context) *TypingTask {
	taskCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.active++
	t.setTypingLocked(true)
	t.mu.Unlock()

	return &TypingTask{t: t, ctx: taskCtx, cancel: cancel}
}

// Context is canceled once the task stops.
func (task *TypingTask) Context() context.Context {
	return task.ctx
}

// Stop ends the task. Calling it more than once is safe.
func (task *TypingTask) Stop() {
	task.once.Do(func() {
		task.cancel()

		t := task.t
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.active > 0 {
			t.active--
		}
		if t.active == 0 {
			t.setTypingLocked(false)
		}
	})
}
