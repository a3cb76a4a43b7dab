package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	// Miss before set
	if _, hit, err := c.Get(ctx, "key1"); err != nil || hit {
		t.Errorf("Get() before Set: hit = %v, err = %v", hit, err)
	}

	// Set and hit
	if err := c.Set(ctx, "key1", []byte("payload"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key1")
	if err != nil || !hit {
		t.Fatalf("Get() after Set: hit = %v, err = %v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}

	// Delete, then miss
	if err := c.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key1"); hit {
		t.Error("Get() after Delete: unexpected hit")
	}

	// Deleting a missing key is fine
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry still hit")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Errorf("Set() error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("NullCache Get() hit = %v, err = %v; want miss", hit, err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Same inputs, same key
	a := k.ColoringKey("meshhash", ColoringKeyOpts{Algorithm: "zones", Seed: 1})
	b := k.ColoringKey("meshhash", ColoringKeyOpts{Algorithm: "zones", Seed: 1})
	if a != b {
		t.Error("identical inputs produced different keys")
	}

	// Options are part of the key
	c := k.ColoringKey("meshhash", ColoringKeyOpts{Algorithm: "zones", Seed: 2})
	if a == c {
		t.Error("different seeds produced identical keys")
	}
	d := k.ColoringKey("meshhash", ColoringKeyOpts{Algorithm: "greedy", Seed: 1})
	if a == d {
		t.Error("different algorithms produced identical keys")
	}

	// Stage prefixes differ
	if !strings.HasPrefix(a, "coloring:") {
		t.Errorf("coloring key %q lacks stage prefix", a)
	}
	r := k.RenderKey("colorhash", "svg")
	if !strings.HasPrefix(r, "render:") {
		t.Errorf("render key %q lacks stage prefix", r)
	}
	if r == k.RenderKey("colorhash", "png") {
		t.Error("different formats produced identical render keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:42:")

	key := scoped.ColoringKey("meshhash", ColoringKeyOpts{})
	if !strings.HasPrefix(key, "tenant:42:coloring:") {
		t.Errorf("scoped key %q not prefixed", key)
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("mesh"))
	if len(h) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(h))
	}
	if h != Hash([]byte("mesh")) {
		t.Error("Hash() is not deterministic")
	}
	if h == Hash([]byte("Mesh")) {
		t.Error("distinct inputs collided")
	}
}
