package sync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShardedMutexSerializesSameKey(t *testing.T) {
	m := NewShardedMutex()

	counter := 0
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock("actor-1")
			defer m.Unlock("actor-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestShardedMutexShardSelectionIsStable(t *testing.T) {
	m := NewShardedMutex()
	assert.Equal(t, m.shardFor("alice"), m.shardFor("alice"))
	assert.Equal(t, 0, m.shardFor(""))
}
