package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	if _, ok, err := c.Get(ctx, "absent"); err != nil || ok {
		t.Errorf("Get(absent) = ok=%v err=%v, want miss", ok, err)
	}

	want := []byte("payload")
	if err := c.Set(ctx, "k", want, time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v err=%v, want hit", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if err := c.Set(ctx, "stale", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, err := c.Get(ctx, "stale"); err != nil || ok {
		t.Errorf("Get(expired) = ok=%v err=%v, want miss", ok, err)
	}

	// Zero TTL never expires.
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "forever"); !ok {
		t.Error("Get(zero ttl) = miss, want hit")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() hit after Delete()")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get() = ok=%v err=%v, want always-miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got, want := k.HTTPKey("price", "btc-usd"), "http:price:btc-usd"; got != want {
		t.Errorf("HTTPKey() = %q, want %q", got, want)
	}

	opts := LayoutKeyOpts{Width: 800, Height: 600, GroupBy: "tag"}
	a := k.LayoutKey("deadbeef", opts)
	b := k.LayoutKey("deadbeef", opts)
	if a != b {
		t.Errorf("LayoutKey() not deterministic: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "layout:") {
		t.Errorf("LayoutKey() = %q, want layout: prefix", a)
	}
	if k.LayoutKey("deadbeef", LayoutKeyOpts{Width: 800, Height: 400}) == a {
		t.Error("LayoutKey() ignores options")
	}
	if k.LayoutKey("cafe", opts) == a {
		t.Error("LayoutKey() ignores snapshot hash")
	}

	art := k.ArtifactKey("deadbeef", ArtifactKeyOpts{Format: "svg", ColorBy: "risk"})
	if !strings.HasPrefix(art, "artifact:") {
		t.Errorf("ArtifactKey() = %q, want artifact: prefix", art)
	}
	if k.ArtifactKey("deadbeef", ArtifactKeyOpts{Format: "png", ColorBy: "risk"}) == art {
		t.Error("ArtifactKey() ignores format")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant1:")

	if got, want := scoped.HTTPKey("price", "k"), "tenant1:"+inner.HTTPKey("price", "k"); got != want {
		t.Errorf("HTTPKey() = %q, want %q", got, want)
	}
	opts := LayoutKeyOpts{Width: 100, Height: 100}
	if got, want := scoped.LayoutKey("h", opts), "tenant1:"+inner.LayoutKey("h", opts); got != want {
		t.Errorf("LayoutKey() = %q, want %q", got, want)
	}

	// A nil inner keyer falls back to the default.
	fallback := NewScopedKeyer(nil, "p:")
	if got, want := fallback.HTTPKey("a", "b"), "p:http:a:b"; got != want {
		t.Errorf("HTTPKey() = %q, want %q", got, want)
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("hello"))
	if len(a) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(a))
	}
	if a != Hash([]byte("hello")) {
		t.Error("Hash() not deterministic")
	}
	if a == Hash([]byte("world")) {
		t.Error("Hash() collided on different inputs")
	}
}
