package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/jobradar/jobradar/internal/jobs"
)

func listingsNamed(title string) []jobs.Listing {
	return []jobs.Listing{{Title: title, Company: "Acme"}}
}

func TestKeyIsOrderIndependent(t *testing.T) {
	a := Key("remoteok", map[string]string{"keywords": "go,backend", "page": "1"})
	b := Key("remoteok", map[string]string{"page": "1", "keywords": "go,backend"})

	if a != b {
		t.Fatalf("keys differ for equivalent params: %q vs %q", a, b)
	}

	other := Key("weworkremotely", map[string]string{"keywords": "go,backend", "page": "1"})
	if a == other {
		t.Fatalf("keys collide across sources: %q", a)
	}
}

func TestGetExpiredEntryIsMiss(t *testing.T) {
	c := New(10)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("k", listingsNamed("Go Developer"), time.Hour)

	current = current.Add(2 * time.Hour)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to be a miss")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be removed, len=%d", c.Len())
	}
}

func TestCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(3)

	for i := range 3 {
		c.Set(fmt.Sprintf("k%d", i), listingsNamed("Engineer"), time.Hour)
	}

	// Touch k0 so k1 becomes the eviction candidate.
	if _, ok := c.Get("k0"); !ok {
		t.Fatal("expected k0 to be present")
	}

	c.Set("k3", listingsNamed("Engineer"), time.Hour)

	if c.Len() != 3 {
		t.Fatalf("capacity invariant broken: len=%d", c.Len())
	}
	if _, ok := c.Get("k1"); ok {
		t.Fatal("expected k1 to be evicted")
	}
	for _, key := range []string{"k0", "k2", "k3"} {
		if _, ok := c.Get(key); !ok {
			t.Fatalf("expected %s to survive eviction", key)
		}
	}
}

func TestSetExistingKeyRefreshes(t *testing.T) {
	c := New(2)

	c.Set("k", listingsNamed("Engineer"), time.Hour)
	c.Set("k", listingsNamed("Senior Engineer"), time.Hour)

	if c.Len() != 1 {
		t.Fatalf("expected update in place, len=%d", c.Len())
	}

	got, ok := c.Get("k")
	if !ok || got[0].Title != "Senior Engineer" {
		t.Fatalf("expected updated payload, got %+v ok=%v", got, ok)
	}
}
