package ingredient

import "strings"

// Source records how an item entered a query
type Source string

const (
	// SourceDetected marks labels coming from photo detection
	SourceDetected Source = "detected"
	// SourceManual marks items typed by the user
	SourceManual Source = "manual"
)

// Item is one entry of a query as the user supplied it
type Item struct {
	Raw    string `json:"raw"`
	Source Source `json:"source"`
}

// Query accumulates the ingredients a user has on hand. It is owned by the
// caller and handed to the matcher as a finished Set. Not safe for concurrent
// use.
type Query struct {
	items []Item
	index map[string]int
}

// NewQuery creates an empty query
func NewQuery() *Query {
	return &Query{index: make(map[string]int)}
}

// AddDetected adds labels produced by the detection collaborator. Detection
// gets no special treatment beyond the recorded source.
func (q *Query) AddDetected(labels ...string) {
	for _, l := range labels {
		q.add(l, SourceDetected)
	}
}

// AddManual adds one user-typed item
func (q *Query) AddManual(item string) {
	q.add(item, SourceManual)
}

// AddManualList splits a comma or newline separated list and adds each item
func (q *Query) AddManualList(text string) int {
	added := 0
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	}) {
		if q.add(part, SourceManual) {
			added++
		}
	}
	return added
}

func (q *Query) add(raw string, src Source) bool {
	raw = strings.TrimSpace(raw)
	key := Normalize(raw)
	if key == "" {
		return false
	}
	if _, dup := q.index[key]; dup {
		return false
	}
	q.index[key] = len(q.items)
	q.items = append(q.items, Item{Raw: raw, Source: src})
	return true
}

// Remove drops an item by its normalized form. Reports whether it was present.
func (q *Query) Remove(item string) bool {
	key := Normalize(item)
	pos, ok := q.index[key]
	if !ok {
		return false
	}
	q.items = append(q.items[:pos], q.items[pos+1:]...)
	delete(q.index, key)
	for i := pos; i < len(q.items); i++ {
		q.index[Normalize(q.items[i].Raw)] = i
	}
	return true
}

// Reset empties the query
func (q *Query) Reset() {
	q.items = nil
	q.index = make(map[string]int)
}

// Items returns a copy of the entries in insertion order
func (q *Query) Items() []Item {
	return append([]Item(nil), q.items...)
}

// Raw returns the items as supplied, in insertion order, one per normalized form
func (q *Query) Raw() []string {
	out := make([]string, len(q.items))
	for i, it := range q.items {
		out[i] = it.Raw
	}
	return out
}

// Set returns the normalized finished query
func (q *Query) Set() Set {
	return NewSet(q.Raw()...)
}

// Len returns the number of distinct items
func (q *Query) Len() int {
	return len(q.items)
}

// Empty reports whether nothing has been added
func (q *Query) Empty() bool {
	return len(q.items) == 0
}

// FromItems rebuilds a query from stored entries, keeping their order and
// dropping duplicates
func FromItems(items []Item) *Query {
	q := NewQuery()
	for _, it := range items {
		q.add(it.Raw, it.Source)
	}
	return q
}
