package pipeline

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/cache"
)

func quietRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestRunnerExecute(t *testing.T) {
	r := quietRunner(t, cache.NewNullCache())
	defer r.Close()

	result, err := r.Execute(context.Background(), testWallet(t), Options{
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.SnapshotHash == "" {
		t.Error("SnapshotHash is empty")
	}
	if result.Stats.TileCount != 3 {
		t.Errorf("TileCount = %d, want 3", result.Stats.TileCount)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("cache hits reported with a null cache")
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("svg artifact missing or malformed: %.60s", svg)
	}
	jsonOut, ok := result.Artifacts[FormatJSON]
	if !ok || !bytes.Contains(jsonOut, []byte(`"tiles"`)) {
		t.Errorf("json artifact missing or malformed: %.60s", jsonOut)
	}
}

func TestRunnerLayoutCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := quietRunner(t, fc)
	defer r.Close()

	w := testWallet(t)
	opts := Options{GroupBy: GroupByTag}

	first, hit, err := r.GenerateLayoutWithCacheInfo(ctx, w, opts)
	if err != nil {
		t.Fatalf("GenerateLayoutWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first layout reported a cache hit")
	}

	second, hit, err := r.GenerateLayoutWithCacheInfo(ctx, w, opts)
	if err != nil {
		t.Fatalf("GenerateLayoutWithCacheInfo() error: %v", err)
	}
	if !hit {
		t.Error("second layout missed the cache")
	}
	if len(second.Tiles) != len(first.Tiles) {
		t.Errorf("cached view has %d tiles, want %d", len(second.Tiles), len(first.Tiles))
	}

	// Refresh bypasses the cache.
	refreshOpts := opts
	refreshOpts.Refresh = true
	if _, hit, err = r.GenerateLayoutWithCacheInfo(ctx, w, refreshOpts); err != nil {
		t.Fatalf("GenerateLayoutWithCacheInfo(refresh) error: %v", err)
	} else if hit {
		t.Error("refresh still hit the cache")
	}

	// Different layout options use a different key.
	if _, hit, err = r.GenerateLayoutWithCacheInfo(ctx, w, Options{GroupBy: GroupByRisk}); err != nil {
		t.Fatalf("GenerateLayoutWithCacheInfo() error: %v", err)
	} else if hit {
		t.Error("different grouping hit the same cache entry")
	}
}

func TestRunnerRenderCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := quietRunner(t, fc)
	defer r.Close()

	view, err := GenerateView(testWallet(t), Options{})
	if err != nil {
		t.Fatalf("GenerateView() error: %v", err)
	}
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, hit, err := r.RenderWithCacheInfo(ctx, view, opts)
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first render reported a cache hit")
	}

	second, hit, err := r.RenderWithCacheInfo(ctx, view, opts)
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() error: %v", err)
	}
	if !hit {
		t.Error("second render missed the cache")
	}
	if !bytes.Equal(first[FormatSVG], second[FormatSVG]) {
		t.Error("cached svg differs from the rendered one")
	}

	// Changing render options invalidates the artifact key.
	labeled := Options{Formats: []string{FormatSVG}, ShowLabels: true}
	if _, hit, err = r.RenderWithCacheInfo(ctx, view, labeled); err != nil {
		t.Fatalf("RenderWithCacheInfo(labels) error: %v", err)
	} else if hit {
		t.Error("different render options hit the same cache entry")
	}
}

func TestSnapshotHash(t *testing.T) {
	w := testWallet(t)
	a, b := SnapshotHash(w), SnapshotHash(w)
	if a == "" || a != b {
		t.Errorf("SnapshotHash() not stable: %q vs %q", a, b)
	}

	other := testWallet(t)
	other.Name = "renamed"
	if SnapshotHash(other) == a {
		t.Error("SnapshotHash() identical for different snapshots")
	}
}

func TestRunnerRejectsInvalidOptions(t *testing.T) {
	r := quietRunner(t, cache.NewNullCache())
	if _, err := r.Execute(context.Background(), testWallet(t), Options{Formats: []string{"bmp"}}); err == nil {
		t.Error("Execute() accepted an invalid format")
	}
}
