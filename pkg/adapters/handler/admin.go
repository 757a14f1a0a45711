package handler

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/resource-directory/pkg/core/domain"
	"github.com/wadjakorntonsri/resource-directory/pkg/ports"
)

// maxOrderBody caps the reorder payload.
const maxOrderBody = 1 << 20

var formFields = []string{"name", "r_type", "description", "tg_link", "pan_link", "pan_pass", "tags"}

// AdminHandler owns the admin list, add, edit, delete and reorder handlers.
// All of them live under the obscure admin path.
type AdminHandler struct {
	store    ports.ResourceStore
	render   *Renderer
	log      *zap.Logger
	title    string
	adminURL string
}

func NewAdminHandler(store ports.ResourceStore, render *Renderer, log *zap.Logger, title, adminURL string) *AdminHandler {
	return &AdminHandler{store: store, render: render, log: log, title: title, adminURL: adminURL}
}

type adminPage struct {
	Title     string
	AdminURL  string
	Resources []domain.Resource
	Types     []string
}

type editPage struct {
	Title    string
	AdminURL string
	Resource domain.Resource
	Types    []string
}

type orderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *AdminHandler) ServeList(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "admin", adminPage{
		Title:     h.title + " · 管理",
		AdminURL:  h.adminURL,
		Resources: h.store.ListAll(r.Context()),
		Types:     domain.TypeSuggestions,
	})
}

func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	in := domain.ResourceInput{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Type:        r.PostFormValue("r_type"),
		Description: r.PostFormValue("description"),
		TGLink:      strings.TrimSpace(r.PostFormValue("tg_link")),
		PanLink:     strings.TrimSpace(r.PostFormValue("pan_link")),
		PanPass:     r.PostFormValue("pan_pass"),
		Tags:        r.PostFormValue("tags"),
	}
	if in.Name == "" {
		http.Error(w, "资源名称不能为空", http.StatusBadRequest)
		return
	}

	created, err := h.store.Add(r.Context(), in)
	h.logPersist(r, "add", created.ID, err)

	http.Redirect(w, r, h.adminURL, http.StatusSeeOther)
}

func (h *AdminHandler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "资源不存在", http.StatusNotFound)
		return
	}
	res, found := h.store.GetByID(r.Context(), id)
	if !found {
		http.Error(w, "资源不存在", http.StatusNotFound)
		return
	}

	types := domain.TypeSuggestions
	if res.Type != "" && !slices.Contains(types, res.Type) {
		types = append(slices.Clone(types), res.Type)
	}

	h.render.Render(w, http.StatusOK, "edit", editPage{
		Title:    h.title + " · 编辑",
		AdminURL: h.adminURL,
		Resource: res,
		Types:    types,
	})
}

// HandleEdit applies only the fields present in the submitted form.
func (h *AdminHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "资源不存在", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	patch := patchFromForm(r)
	if patch.Name != nil && *patch.Name == "" {
		http.Error(w, "资源名称不能为空", http.StatusBadRequest)
		return
	}

	_, found, err := h.store.Update(r.Context(), id, patch)
	if !found {
		http.Error(w, "资源不存在", http.StatusNotFound)
		return
	}
	h.logPersist(r, "update", id, err)

	http.Redirect(w, r, h.adminURL, http.StatusSeeOther)
}

func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "资源不存在", http.StatusNotFound)
		return
	}

	found, err := h.store.Delete(r.Context(), id)
	if !found {
		http.Error(w, "资源不存在", http.StatusNotFound)
		return
	}
	h.logPersist(r, "delete", id, err)

	http.Redirect(w, r, h.adminURL, http.StatusSeeOther)
}

// HandleReorder expects a JSON array of ids in display order. Ids may be
// numbers or numeric strings.
func (h *AdminHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var ids []orderID
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBody)).Decode(&ids); err != nil {
		writeJSON(w, http.StatusBadRequest, orderResponse{Success: false, Message: "无效的排序数据"})
		return
	}

	order := make([]int64, len(ids))
	for i, id := range ids {
		order[i] = int64(id)
	}

	if err := h.store.Reorder(r.Context(), order); err != nil {
		h.log.Error("update order", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
		writeJSON(w, http.StatusOK, orderResponse{Success: false, Message: "更新失败"})
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Success: true, Message: "排序更新成功！"})
}

// logPersist reports a soft write failure; the request still succeeds.
func (h *AdminHandler) logPersist(r *http.Request, op string, id int64, err error) {
	if err == nil {
		return
	}
	h.log.Warn("resource write not persisted",
		zap.String("op", op),
		zap.Int64("id", id),
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.Error(err))
}

func patchFromForm(r *http.Request) domain.ResourcePatch {
	var p domain.ResourcePatch
	targets := map[string]**string{
		"name":        &p.Name,
		"r_type":      &p.Type,
		"description": &p.Description,
		"tg_link":     &p.TGLink,
		"pan_link":    &p.PanLink,
		"pan_pass":    &p.PanPass,
		"tags":        &p.Tags,
	}
	for _, field := range formFields {
		vals, ok := r.PostForm[field]
		if !ok || len(vals) == 0 {
			continue
		}
		v := vals[0]
		switch field {
		case "name", "tg_link", "pan_link":
			v = strings.TrimSpace(v)
		}
		*targets[field] = &v
	}
	return p
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

type orderID int64

func (id *orderID) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*id = orderID(v)
	return nil
}
