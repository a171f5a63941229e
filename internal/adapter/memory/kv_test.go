package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestKVStore_GetSet(t *testing.T) {
	t.Parallel()

	s := NewKVStore()
	ctx := context.Background()

	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("empty store should not find a key")
	}
	_ = s.Set(ctx, "k", "v")
	v, found, err := s.Get(ctx, "k")
	if err != nil || !found || v != "v" {
		t.Errorf("Get = %q, %v, %v", v, found, err)
	}
}

func TestKVStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewKVStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = s.Set(ctx, key, fmt.Sprint(i))
			_, _, _ = s.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		if _, found, _ := s.Get(ctx, fmt.Sprintf("k%d", i)); !found {
			t.Errorf("k%d missing", i)
		}
	}
}
