package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagList(t *testing.T) {
	tests := []struct {
		tags string
		want []string
	}{
		{"", nil},
		{"Software Tool, Utility", []string{"Software Tool", "Utility"}},
		{" a ,, b ,", []string{"a", "b"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resource{Tags: tt.tags}.TagList(), "tags %q", tt.tags)
	}
}

func TestResourcePatch_Apply(t *testing.T) {
	r := Resource{ID: 3, Name: "old", Tags: "x", PanPass: "p", SortOrder: 2, CreatedAt: "2024-01-01"}
	name := "new"
	empty := ""
	ResourcePatch{Name: &name, PanPass: &empty}.Apply(&r)

	assert.Equal(t, Resource{ID: 3, Name: "new", Tags: "x", SortOrder: 2, CreatedAt: "2024-01-01"}, r)
}

func TestMatches(t *testing.T) {
	r := Resource{Name: "Go Book", Tags: "Software Tool", Description: "Learn Go"}
	assert.True(t, r.Matches("book"))
	assert.True(t, r.Matches("tool"))
	assert.True(t, r.Matches("learn"))
	assert.False(t, r.Matches("rust"))
}

func TestCollection_Normalize(t *testing.T) {
	var c Collection
	c.Normalize()
	assert.Equal(t, NewCollection(), c)

	c = Collection{Resources: []Resource{{ID: 4}, {ID: 9}}, NextID: 2}
	c.Normalize()
	assert.Equal(t, int64(10), c.NextID)

	c = Collection{Resources: []Resource{{ID: 4}}, NextID: 12}
	c.Normalize()
	assert.Equal(t, int64(12), c.NextID)
}

func TestCollection_SortedAndRenumber(t *testing.T) {
	c := Collection{Resources: []Resource{
		{ID: 1, SortOrder: 5},
		{ID: 2, SortOrder: 0},
		{ID: 3, SortOrder: 5},
		{ID: 4, SortOrder: 2},
	}}

	ids := func(rs []Resource) []int64 {
		var out []int64
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []int64{2, 4, 1, 3}, ids(c.Sorted()))
	assert.Equal(t, int64(1), c.Resources[0].ID, "Sorted must not reorder in place")

	c.Renumber()
	assert.Equal(t, []int64{2, 4, 1, 3}, ids(c.Resources))
	for i, r := range c.Resources {
		assert.Equal(t, i, r.SortOrder)
	}
}

func TestCollection_IndexOf(t *testing.T) {
	c := Collection{Resources: []Resource{{ID: 7}, {ID: 3}}}
	assert.Equal(t, 1, c.IndexOf(3))
	assert.Equal(t, -1, c.IndexOf(8))
}

func TestCollection_SortedExtremeOrders(t *testing.T) {
	c := Collection{Resources: []Resource{
		{ID: 1, SortOrder: math.MaxInt},
		{ID: 2, SortOrder: math.MinInt},
		{ID: 3, SortOrder: 0},
	}}
	var ids []int64
	for _, r := range c.Sorted() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{2, 3, 1}, ids)
}

func TestCollection_EncodeKeepsMarkup(t *testing.T) {
	c := Collection{
		Resources: []Resource{{ID: 1, Name: "A&B", Description: "<b>x</b>", PanLink: "https://p.example/s?a=1&b=2", CreatedAt: "2024-01-01"}},
		NextID:    2,
	}
	data, err := c.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "A&B"`)
	assert.Contains(t, string(data), `"description": "<b>x</b>"`)
	assert.Contains(t, string(data), `"pan_link": "https://p.example/s?a=1&b=2"`)
	assert.NotContains(t, string(data), `\u00`)
	assert.Equal(t, byte('}'), data[len(data)-1])
}
