package board

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistryGetOrCreateIsIdempotent(t *testing.T) {
	reg := NewRegistry()

	rm, created := reg.GetOrCreate("R")
	if !created {
		t.Fatal("first GetOrCreate did not create")
	}
	again, created := reg.GetOrCreate("R")
	if created {
		t.Fatal("second GetOrCreate created a new room")
	}
	if rm != again {
		t.Fatal("GetOrCreate returned a different room for the same id")
	}
	if reg.Len() != 1 {
		t.Fatalf("registry len = %d, want 1", reg.Len())
	}
}

func TestRegistryGetAbsent(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Get("missing"); ok {
		t.Fatal("Get reported a room that was never created")
	}
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry()
	reg.GetOrCreate("R")
	reg.Remove("R")
	if _, ok := reg.Get("R"); ok {
		t.Fatal("room still present after Remove")
	}
	reg.Remove("R") // removing twice is fine
	if reg.Len() != 0 {
		t.Fatalf("registry len = %d, want 0", reg.Len())
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("room-%d", n%4)
			for j := 0; j < 100; j++ {
				reg.GetOrCreate(id)
				reg.Get(id)
				reg.Len()
			}
		}(i)
	}
	wg.Wait()

	if reg.Len() != 4 {
		t.Fatalf("registry len = %d, want 4", reg.Len())
	}
}
