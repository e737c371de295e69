package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunnerExecutesTasks(t *testing.T) {
	r := NewRunner(2, 8, discardLogger())

	var count atomic.Int32
	for i := 0; i < 5; i++ {
		ok := r.Submit("count", func(context.Context) {
			count.Add(1)
		})
		assert.True(t, ok)
	}

	r.Close()
	assert.Equal(t, int32(5), count.Load())
}

func TestRunnerRecoversFromPanic(t *testing.T) {
	r := NewRunner(1, 8, discardLogger())

	var ran atomic.Bool
	r.Submit("boom", func(context.Context) {
		panic("boom")
	})
	r.Submit("after", func(context.Context) {
		ran.Store(true)
	})

	r.Close()
	assert.True(t, ran.Load())
}

func TestRunnerRejectsAfterClose(t *testing.T) {
	r := NewRunner(1, 8, discardLogger())
	r.Close()

	ok := r.Submit("late", func(context.Context) {})
	assert.False(t, ok)
}

func TestRunnerDropsWhenQueueFull(t *testing.T) {
	r := NewRunner(1, 1, discardLogger())
	defer r.Close()

	block := make(chan struct{})
	started := make(chan struct{})

	// Occupy the single worker.
	r.Submit("blocker", func(context.Context) {
		close(started)
		<-block
	})
	<-started

	// Fill the queue, then overflow it.
	assert.True(t, r.Submit("queued", func(context.Context) {}))
	assert.False(t, r.Submit("dropped", func(context.Context) {}))

	close(block)
}
