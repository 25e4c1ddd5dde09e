package core

// UnifyTraits returns every trait name in the batch once, in first-seen order.
func UnifyTraits(items []Item) []string {
	var order []string
	seen := make(map[string]struct{})
	for _, it := range items {
		for _, name := range it.Traits.names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			order = append(order, name)
		}
	}
	return order
}
