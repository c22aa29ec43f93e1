package physsync

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinFiresOnceInEitherOrder(t *testing.T) {
	orders := map[string]func(j *Join[string, int]){
		"left_first": func(j *Join[string, int]) {
			j.SetLeft("scene")
			j.SetRight(7)
		},
		"right_first": func(j *Join[string, int]) {
			j.SetRight(7)
			j.SetLeft("scene")
		},
	}
	for name, run := range orders {
		t.Run(name, func(t *testing.T) {
			var calls int
			j := NewJoin(func(l string, r int) {
				calls++
				assert.Equal(t, "scene", l)
				assert.Equal(t, 7, r)
			}, func(error) { t.Fatal("unexpected failure") })

			assert.False(t, j.Done())
			run(j)
			j.SetLeft("again")
			j.SetRight(8)
			j.Fail(errors.New("late"))

			assert.Equal(t, 1, calls)
			assert.True(t, j.Done())
		})
	}
}

func TestJoinFailure(t *testing.T) {
	var ready, failed int
	var got error
	j := NewJoin(func(string, int) { ready++ }, func(err error) {
		failed++
		got = err
	})

	j.SetLeft("scene")
	boom := errors.New("descriptor missing")
	j.Fail(boom)
	j.Fail(errors.New("second"))
	j.SetRight(1)

	assert.Equal(t, 0, ready)
	assert.Equal(t, 1, failed)
	assert.ErrorIs(t, got, boom)
}

func TestJoinConcurrent(t *testing.T) {
	for i := 0; i < 100; i++ {
		var calls atomic.Int32
		j := NewJoin(func(int, int) { calls.Add(1) }, nil)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); j.SetLeft(1) }()
		go func() { defer wg.Done(); j.SetRight(2) }()
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	}
}
