package domain

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
)

// Collection is the full persisted state: every resource plus the id counter.
// It is read and written as a single document.
type Collection struct {
	Resources []Resource `json:"resources"`
	NextID    int64      `json:"next_id"`
}

// NewCollection returns the empty state used when nothing is persisted yet.
func NewCollection() Collection {
	return Collection{Resources: []Resource{}, NextID: 1}
}

// MaxID returns the largest id in the collection, or 0 when it is empty.
func (c Collection) MaxID() int64 {
	var highest int64
	for _, r := range c.Resources {
		if r.ID > highest {
			highest = r.ID
		}
	}
	return highest
}

// Normalize repairs a freshly decoded document so the id counter stays ahead
// of every stored id and the resource slice is never nil.
func (c *Collection) Normalize() {
	if c.Resources == nil {
		c.Resources = []Resource{}
	}
	if highest := c.MaxID(); c.NextID <= highest {
		c.NextID = highest + 1
	}
	if c.NextID < 1 {
		c.NextID = 1
	}
}

// Sorted returns a copy of the resources ordered by SortOrder.
// Ties keep their document order.
func (c Collection) Sorted() []Resource {
	out := slices.Clone(c.Resources)
	if out == nil {
		out = []Resource{}
	}
	slices.SortStableFunc(out, func(a, b Resource) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	return out
}

// IndexOf returns the position of id in Resources, or -1.
func (c Collection) IndexOf(id int64) int {
	return slices.IndexFunc(c.Resources, func(r Resource) bool { return r.ID == id })
}

// Renumber rewrites SortOrder to 0..n-1 following the current display order.
func (c *Collection) Renumber() {
	sorted := c.Sorted()
	for i := range sorted {
		sorted[i].SortOrder = i
	}
	c.Resources = sorted
}

// Encode renders the document with two-space indentation and without HTML
// escaping, so links and markup are stored as written.
func (c Collection) Encode() ([]byte, error) {
	if c.Resources == nil {
		c.Resources = []Resource{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
