package treemap

// Group pre-aggregates items for grouped treemaps: values are summed per
// key and one item per key is returned, in first-seen key order. The
// result feeds the same [Layout] unchanged; grouping is a pre-processing
// step, not a layout variant.
//
// Items whose key function returns "" are grouped under "other".
func Group(items []Item, key func(Item) string) []Item {
	index := make(map[string]int, len(items))
	var out []Item

	for _, it := range items {
		k := key(it)
		if k == "" {
			k = "other"
		}
		if i, ok := index[k]; ok {
			out[i].Value += it.Value
			continue
		}
		index[k] = len(out)
		out = append(out, Item{ID: k, Value: it.Value})
	}

	return out
}
