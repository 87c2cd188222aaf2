package extract

// scan drives a single left-to-right pass over the line sequence, applying
// the noise filter and the matcher set until the totals boundary. The cursor
// advances by the consumed line count on a match and by one line otherwise,
// so the pass is O(n) in matcher attempts and always terminates.
func scan(lines []string, hints StoreHints) ([]Item, []string) {
	var items []Item
	formats := make(map[string]bool)

	boundary := itemBoundary(lines)
	i := 0
	for i < boundary {
		if isNoise(lines[i]) {
			i++
			continue
		}

		matched := false
		for _, m := range matchers {
			if !m.Detect(lines, i) {
				continue
			}
			item, consumed, ok := m.Extract(lines, i, hints)
			if !ok {
				continue
			}
			if consumed < 1 {
				consumed = 1 // forward-progress guarantee
			}
			item.Confidence = itemConfidence(m.Name(), item)
			items = append(items, item)
			formats[m.Name()] = true
			i += consumed
			matched = true
			break
		}
		if !matched {
			i++
		}
	}

	return items, sortedSet(formats)
}
