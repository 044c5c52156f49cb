package rules

import "sort"

// Index maps trigger runes to priority-ordered candidate rules. It is
// read-only after Compile returns and safe to share across keystrokes
// without locking. Rebuilding an Index is a full recompile.
type Index struct {
	byKey map[rune][]*Rule
	all   []*Rule
}

// register appends a rule under a trigger rune in declaration order.
func (x *Index) register(key rune, r *Rule) {
	x.byKey[key] = append(x.byKey[key], r)
}

// finish sorts every bucket by descending priority. The sorts are
// stable and buckets are filled in declaration order, so equal
// priorities keep their declared relative order regardless of the map
// iteration order used anywhere else.
func (x *Index) finish() {
	seen := make(map[*Rule]bool)
	for _, bucket := range x.byKey {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Priority > bucket[j].Priority
		})
		for _, r := range bucket {
			if !seen[r] {
				seen[r] = true
				x.all = append(x.all, r)
			}
		}
	}
	sort.SliceStable(x.all, func(i, j int) bool {
		if x.all[i].Priority != x.all[j].Priority {
			return x.all[i].Priority > x.all[j].Priority
		}
		return x.all[i].seq < x.all[j].seq
	})
}

// Candidates returns the rules that may be triggered by the given rune,
// ordered by descending priority. The returned slice must not be
// modified.
func (x *Index) Candidates(key rune) []*Rule {
	return x.byKey[key]
}

// All returns every compiled rule, deduplicated, ordered by descending
// priority with declaration order as the tie-break. Used by the
// surrounding-pair searches of the backspace, enter, and space classes.
func (x *Index) All() []*Rule {
	return x.all
}

// Len returns the number of distinct compiled rules.
func (x *Index) Len() int {
	return len(x.all)
}

// TriggerKeys returns the sorted set of trigger keys, one single-rune
// string per key, so the host knows which keys to bind.
func (x *Index) TriggerKeys() []string {
	keys := make([]string, 0, len(x.byKey))
	for k := range x.byKey {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
