package domain

import "strings"

// DateLayout is the calendar-date format used for CreatedAt.
const DateLayout = "2006-01-02"

// TypeSuggestions are the categories offered by the admin form.
// Any other value is accepted.
var TypeSuggestions = []string{"软件工具", "影视资源", "学习教程", "游戏资源", "文档资料", "其他"}

// Resource represents a single listed entry in the directory
type Resource struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"r_type"`
	Description string `json:"description"`
	TGLink      string `json:"tg_link"`
	PanLink     string `json:"pan_link"`
	PanPass     string `json:"pan_pass"`
	Tags        string `json:"tags"` // comma separated
	SortOrder   int    `json:"sort_order"`
	CreatedAt   string `json:"created_at"` // YYYY-MM-DD
}

// TagList splits Tags on commas, trimming blanks.
func (r Resource) TagList() []string {
	var out []string
	for _, t := range strings.Split(r.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ResourceInput holds the fields supplied when creating a resource.
type ResourceInput struct {
	Name        string `json:"name"`
	Type        string `json:"r_type"`
	Description string `json:"description"`
	TGLink      string `json:"tg_link"`
	PanLink     string `json:"pan_link"`
	PanPass     string `json:"pan_pass"`
	Tags        string `json:"tags"`
}

// ResourcePatch is a partial update. A nil field is left untouched; a
// pointer to "" clears the field.
type ResourcePatch struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"r_type,omitempty"`
	Description *string `json:"description,omitempty"`
	TGLink      *string `json:"tg_link,omitempty"`
	PanLink     *string `json:"pan_link,omitempty"`
	PanPass     *string `json:"pan_pass,omitempty"`
	Tags        *string `json:"tags,omitempty"`
}

// Apply merges the provided fields onto r. Identity, ordering and creation
// date are never touched.
func (p ResourcePatch) Apply(r *Resource) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&r.Name, p.Name)
	set(&r.Type, p.Type)
	set(&r.Description, p.Description)
	set(&r.TGLink, p.TGLink)
	set(&r.PanLink, p.PanLink)
	set(&r.PanPass, p.PanPass)
	set(&r.Tags, p.Tags)
}

// Matches reports whether r contains query (already lower-cased) in its
// name, tags or description.
func (r Resource) Matches(query string) bool {
	return strings.Contains(strings.ToLower(r.Name), query) ||
		strings.Contains(strings.ToLower(r.Tags), query) ||
		strings.Contains(strings.ToLower(r.Description), query)
}
