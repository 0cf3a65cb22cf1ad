package roster

// Merge concatenates the given record lists into one deduplicated list.
// Lists are scanned in argument order and records within a list in their
// existing order; the first record seen for a dedup key wins and later
// duplicates are discarded. Records with a website deduplicate on the
// normalised website, records without one on the normalised name.
//
// When maxTotal is positive the merged list is truncated to that many
// records, preserving order. Merge is deterministic: identical inputs always
// produce the identical output, and merging an already-deduplicated list
// with itself returns it unchanged.
func Merge(maxTotal int, lists ...[]Record) []Record {
	seen := make(map[string]bool)
	var merged []Record

	for _, list := range lists {
		for _, rec := range list {
			key := rec.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, rec)
		}
	}

	if maxTotal > 0 && len(merged) > maxTotal {
		merged = merged[:maxTotal]
	}
	return merged
}
