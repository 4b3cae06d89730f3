package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyed_SerializesSameKey(t *testing.T) {
	k := NewKeyed()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("room:1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyed_IndependentKeys(t *testing.T) {
	k := NewKeyed()

	unlock1 := k.Lock("room:1")
	defer unlock1()

	// A different key must not block.
	done := make(chan struct{})
	go func() {
		unlock2 := k.Lock("room:2")
		unlock2()
		close(done)
	}()
	<-done
}
