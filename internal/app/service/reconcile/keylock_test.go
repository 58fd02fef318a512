package reconcile

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	const workers = 32
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := km.Lock("POS-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := newKeyedMutex()

	unlockA := km.Lock("POS-1")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("POS-2")
		unlockB()
		close(done)
	}()
	<-done
}
