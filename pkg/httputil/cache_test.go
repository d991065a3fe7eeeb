package httputil

import (
	"errors"
	"testing"
	"time"
)

type pricePoint struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

func TestCacheGetSet(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	var got pricePoint
	ok, err := c.Get("btc:usd", &got)
	if err != nil || ok {
		t.Errorf("Get(missing) = %v, %v; want miss", ok, err)
	}

	want := pricePoint{Price: 64250.5, Currency: "usd"}
	if err := c.Set("btc:usd", want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	ok, err = c.Get("btc:usd", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCacheExpiry(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	if err := c.Set("k", pricePoint{Price: 1}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	var got pricePoint
	ok, err := c.Get("k", &got)
	if ok {
		t.Error("Get() hit on expired entry")
	}
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Get() error = %v, want ErrExpired", err)
	}
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}
	if c.TTL() != 0 {
		t.Errorf("TTL() = %v, want 0", c.TTL())
	}

	if err := c.Set("k", pricePoint{Price: 2}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	var got pricePoint
	if ok, err := c.Get("k", &got); err != nil || !ok {
		t.Errorf("Get() = %v, %v; want hit", ok, err)
	}
}

func TestCacheNamespace(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	current := c.Namespace("price:current:")
	history := c.Namespace("price:history:")

	if err := current.Set("usd", pricePoint{Price: 10}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := history.Set("usd", pricePoint{Price: 20}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var a, b pricePoint
	if ok, _ := current.Get("usd", &a); !ok || a.Price != 10 {
		t.Errorf("current.Get() = %+v, want price 10", a)
	}
	if ok, _ := history.Get("usd", &b); !ok || b.Price != 20 {
		t.Errorf("history.Get() = %+v, want price 20", b)
	}

	// Unprefixed key does not collide with namespaced ones.
	var c2 pricePoint
	if ok, _ := c.Get("usd", &c2); ok {
		t.Error("namespaced entries leaked into the root key space")
	}
}
