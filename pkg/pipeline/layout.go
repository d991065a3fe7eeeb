package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/treemap"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// View is a computed treemap view of a wallet snapshot: placed tiles plus
// the frame they were placed in. Views serialize to JSON for caching and
// for the "json" output format.
type View struct {
	Wallet string  `json:"wallet"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	GroupBy string `json:"group_by"`
	Tiles   []Tile `json:"tiles"`
}

// Tile is one placed treemap tile with its display metadata.
type Tile struct {
	ID        string           `json:"id"`
	Label     string           `json:"label"`
	AmountBTC float64          `json:"amount_btc"`
	Risk      wallet.RiskLevel `json:"risk"`
	Group     string           `json:"group,omitempty"`
	Rect      treemap.Rect     `json:"rect"`
}

// GenerateView computes the treemap view for a wallet snapshot.
// Tiles are one per UTXO, per tag group, or per risk tier depending on
// opts.GroupBy. Tile areas are proportional to BTC amounts.
func GenerateView(w *wallet.Wallet, opts Options) (View, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return View{}, err
	}

	tiles := buildTiles(w, opts.GroupBy)

	items := make([]treemap.Item, len(tiles))
	for i, t := range tiles {
		items[i] = treemap.Item{ID: t.ID, Value: t.AmountBTC}
	}
	items = treemap.ClampValues(items)

	rects, err := treemap.Layout(items, treemap.Rect{Width: opts.Width, Height: opts.Height})
	if err != nil {
		return View{}, fmt.Errorf("layout: %w", err)
	}
	for i := range tiles {
		tiles[i].Rect = rects[i]
	}

	return View{
		Wallet:  w.Name,
		Width:   opts.Width,
		Height:  opts.Height,
		GroupBy: opts.GroupBy,
		Tiles:   tiles,
	}, nil
}

func buildTiles(w *wallet.Wallet, groupBy string) []Tile {
	switch groupBy {
	case GroupByTag:
		return groupedTiles(w, func(u *wallet.UTXO) string {
			if len(u.Tags) == 0 {
				return "untagged"
			}
			return u.Tags[0]
		})
	case GroupByRisk:
		return groupedTiles(w, func(u *wallet.UTXO) string {
			return u.Risk.String()
		})
	default:
		return utxoTiles(w)
	}
}

func utxoTiles(w *wallet.Wallet) []Tile {
	tiles := make([]Tile, 0, len(w.UTXOs))
	for i := range w.UTXOs {
		u := &w.UTXOs[i]
		group := "untagged"
		if len(u.Tags) > 0 {
			group = u.Tags[0]
		}
		tiles = append(tiles, Tile{
			ID:        u.OutPoint(),
			Label:     fmt.Sprintf("%.4f BTC", u.BTC()),
			AmountBTC: u.BTC(),
			Risk:      u.Risk,
			Group:     group,
		})
	}
	return tiles
}

// groupedTiles sums amounts per key in first-seen order. A group's risk is
// the highest risk of any member, matching the never-downgrade rule used
// by scoring.
func groupedTiles(w *wallet.Wallet, key func(*wallet.UTXO) string) []Tile {
	index := make(map[string]int)
	var tiles []Tile
	for i := range w.UTXOs {
		u := &w.UTXOs[i]
		k := key(u)
		idx, ok := index[k]
		if !ok {
			idx = len(tiles)
			index[k] = idx
			tiles = append(tiles, Tile{ID: k, Label: k, Group: k, Risk: u.Risk})
		}
		tiles[idx].AmountBTC += u.BTC()
		if u.Risk > tiles[idx].Risk {
			tiles[idx].Risk = u.Risk
		}
	}
	return tiles
}

// MarshalView serializes a view for caching and JSON output.
func MarshalView(v View) ([]byte, error) {
	return json.Marshal(v)
}

// UnmarshalView deserializes a cached view.
func UnmarshalView(data []byte) (View, error) {
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, fmt.Errorf("unmarshal view: %w", err)
	}
	return v, nil
}
