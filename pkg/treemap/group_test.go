package treemap

import (
	"reflect"
	"testing"
)

func TestGroup(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		key   func(Item) string
		want  []Item
	}{
		{
			name: "sums per key in first-seen order",
			items: []Item{
				{ID: "a", Value: 1},
				{ID: "b", Value: 2},
				{ID: "c", Value: 3},
				{ID: "d", Value: 4},
			},
			key: func(it Item) string {
				if it.ID == "b" || it.ID == "d" {
					return "even"
				}
				return "odd"
			},
			want: []Item{{ID: "odd", Value: 4}, {ID: "even", Value: 6}},
		},
		{
			name: "empty key falls back to other",
			items: []Item{
				{ID: "a", Value: 1},
				{ID: "b", Value: 2},
			},
			key:  func(Item) string { return "" },
			want: []Item{{ID: "other", Value: 3}},
		},
		{
			name:  "no items",
			items: nil,
			key:   func(it Item) string { return it.ID },
			want:  nil,
		},
		{
			name: "identity key keeps items distinct",
			items: []Item{
				{ID: "x", Value: 1},
				{ID: "y", Value: 2},
			},
			key:  func(it Item) string { return it.ID },
			want: []Item{{ID: "x", Value: 1}, {ID: "y", Value: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Group(tt.items, tt.key)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Group() = %v, want %v", got, tt.want)
			}
		})
	}
}
