package cache

import "testing"

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)

	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = ok, want miss")
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("Stats() hits/misses = %d/%d, want 1/1", s.Hits, s.Misses)
	}
	if got := s.HitRate(); got != 0.5 {
		t.Errorf("HitRate() = %v, want 0.5", got)
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[int, string](0)
	calls := 0
	create := func() string {
		calls++
		return "v"
	}

	for range 3 {
		if got := c.GetOrCreate(7, create); got != "v" {
			t.Fatalf("GetOrCreate() = %q, want v", got)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](4)
	var evicted []int
	c.OnEvict(func(k, _ int) { evicted = append(evicted, k) })

	for i := range 4 {
		c.Set(i, i)
	}
	// Keep 0 fresh so 1 becomes the oldest.
	c.Get(0)
	c.Set(4, 4)

	// Five entries over a limit of four trims to three.
	if got := c.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	for _, k := range []int{1, 2} {
		if _, ok := c.Get(k); ok {
			t.Errorf("key %d survived eviction", k)
		}
	}
	for _, k := range []int{0, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d was evicted", k)
		}
	}
	if len(evicted) != 2 {
		t.Errorf("OnEvict called %d times, want 2", len(evicted))
	}
	if got := c.Stats().Evictions; got != 2 {
		t.Errorf("Stats().Evictions = %d, want 2", got)
	}
}

func TestCacheDeleteClear(t *testing.T) {
	c := New[string, int](0)
	c.Set("a", 1)
	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	c.Set("b", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}
