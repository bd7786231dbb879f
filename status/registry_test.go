package status

import (
	"sync"
	"testing"
)

func TestGetReturnsCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(BattleHits)
	b := r.Ints.Get(BattleHits)
	if a != b {
		t.Fatalf("Get returned distinct pointers for one key")
	}
}

func TestConcurrentAdds(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get(NetSent).Add(1)
				r.Floats.Get(BattleBlockedDamage).Add(0.5)
			}
		}()
	}
	wg.Wait()
	if got := r.Ints.Get(NetSent).Load(); got != 1600 {
		t.Fatalf("NetSent = %d, want 1600", got)
	}
	if got := r.Floats.Get(BattleBlockedDamage).Get(); got != 800 {
		t.Fatalf("BlockedDamage = %v, want 800", got)
	}
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get(BattleActive).Store(true)
	r.Ints.Get(BattleTicks).Store(42)
	r.Floats.Get(BattleBlockedDamage).Set(1.5)

	snap := r.Snapshot()
	if snap[BattleActive] != true || snap[BattleTicks] != int64(42) || snap[BattleBlockedDamage] != 1.5 {
		t.Fatalf("unexpected snapshot %v", snap)
	}
	if r.TotalCount() != 3 {
		t.Fatalf("TotalCount = %d", r.TotalCount())
	}
}
