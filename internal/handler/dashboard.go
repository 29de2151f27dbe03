package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"easyimg-web/internal/listing"
	"easyimg-web/internal/model"
	"easyimg-web/internal/session"
)

type adminClient interface {
	listing.Fetcher
	Upload(ctx context.Context, token string, path string, filename string, content io.Reader) (model.FileEntry, error)
	CreateDirectory(ctx context.Context, token string, dirname string, path string) error
	Delete(ctx context.Context, token string, filename string, path string) (bool, error)
	Rename(ctx context.Context, token string, oldName string, newName string, path string) (model.FileEntry, error)
}

// DashboardHandler serves the admin file-management views and actions.
type DashboardHandler struct {
	client        adminClient
	sessions      *session.Manager
	listings      *listing.Store
	renderer      *Renderer
	maxUploadSize int64
}

func NewDashboardHandler(client adminClient, sessions *session.Manager, listings *listing.Store, renderer *Renderer, maxUploadSize int64) *DashboardHandler {
	return &DashboardHandler{
		client:        client,
		sessions:      sessions,
		listings:      listings,
		renderer:      renderer,
		maxUploadSize: maxUploadSize,
	}
}

type dashboardView struct {
	Path      string
	Crumbs    []navCrumbView
	Entries   []model.FileEntry
	Page      paginationView
	Pending   *listing.DeleteTarget
	ListErr   string
	UploadErr string
	MkdirErr  string
	RenameErr string
}

type navCrumbView struct {
	Name  string
	Index int
	Last  bool
}

type paginationView struct {
	Visible     bool
	CurrentPage int
	TotalPages  int
	TotalItems  int
	RangeStart  int
	RangeEnd    int
	Window      []int
	HasPrevious bool
	HasNext     bool
	Previous    int
	Next        int
}

// gate runs the fine-grained session check: a stored credential past its
// expiry is cleared and treated as absent, on top of the coarse cookie
// guard that already ran in the middleware chain.
func (h *DashboardHandler) gate(w http.ResponseWriter, r *http.Request) (*listing.Session, bool) {
	sess, err := h.sessions.Current(r)
	if err != nil {
		if errors.Is(err, model.ErrSessionExpired) {
			h.sessions.Clear(w)
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}

	return h.listings.Get(sess.ID, sess.Token), true
}

func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	// First visit for this session fetches the root listing. Later views
	// render whatever state the actions left behind.
	if !sess.Loaded() {
		sess.Refresh(r.Context())
	}

	h.renderView(w, sess, dashboardView{})
}

func (h *DashboardHandler) renderView(w http.ResponseWriter, sess *listing.Session, view dashboardView) {
	snapshot := sess.Snapshot()

	view.Path = snapshot.Path
	view.Entries = snapshot.Entries
	view.Pending = snapshot.PendingDelete
	if snapshot.Err != nil {
		view.ListErr = "Failed to load the file listing. The view below may be out of date."
	}

	crumbs := make([]navCrumbView, 0, len(snapshot.Crumbs))
	for _, crumb := range snapshot.Crumbs {
		crumbs = append(crumbs, navCrumbView{Name: crumb.Name, Index: crumb.Index, Last: crumb.Last})
	}
	view.Crumbs = crumbs

	page := snapshot.Page
	view.Page = paginationView{
		Visible:     page.Visible(),
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		RangeStart:  page.RangeStart(),
		RangeEnd:    page.RangeEnd(),
		Window:      page.Window(),
		HasPrevious: page.HasPrevious(),
		HasNext:     page.HasNext(),
		Previous:    page.CurrentPage - 1,
		Next:        page.CurrentPage + 1,
	}

	h.renderer.render(w, http.StatusOK, "dashboard.html", view)
}

// Open enters a child directory.
func (h *DashboardHandler) Open(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	dir := r.PostFormValue("dir")
	if dir != "" {
		sess.NavigateInto(r.Context(), dir)
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Up moves one level toward the root.
func (h *DashboardHandler) Up(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	sess.NavigateUp(r.Context())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Home jumps to the root.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	sess.NavigateRoot(r.Context())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Jump truncates the path at a breadcrumb index.
func (h *DashboardHandler) Jump(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PostFormValue("index"))
	if err == nil {
		sess.NavigateBreadcrumb(r.Context(), index)
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// GoToPage moves within the current path; out-of-range targets are ignored.
func (h *DashboardHandler) GoToPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	page, err := strconv.Atoi(r.PostFormValue("page"))
	if err == nil {
		sess.GoToPage(r.Context(), page)
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Upload sends the selected files to the current path, one call per file,
// then re-fetches the listing.
func (h *DashboardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.renderView(w, sess, dashboardView{UploadErr: "Upload failed. Please try again."})
		return
	}

	fileHeaders := r.MultipartForm.File["file"]
	if len(fileHeaders) == 0 {
		h.renderView(w, sess, dashboardView{UploadErr: "No files selected"})
		return
	}

	path := sess.Path()
	for _, header := range fileHeaders {
		opened, err := header.Open()
		if err != nil {
			h.renderView(w, sess, dashboardView{UploadErr: "Upload failed. Please try again."})
			return
		}

		_, err = h.client.Upload(r.Context(), sess.Token(), path, header.Filename, opened)
		opened.Close()
		if err != nil {
			slog.Error("admin upload failed", "path", path, "file", header.Filename, "error", err)
			h.renderView(w, sess, dashboardView{UploadErr: "Upload failed. Please try again."})
			return
		}
	}

	sess.Refresh(r.Context())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Mkdir creates a directory under the current path and re-fetches.
func (h *DashboardHandler) Mkdir(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	dirname := strings.TrimSpace(r.PostFormValue("dirname"))
	if dirname == "" {
		h.renderView(w, sess, dashboardView{MkdirErr: "Directory name is required"})
		return
	}

	if err := h.client.CreateDirectory(r.Context(), sess.Token(), dirname, sess.Path()); err != nil {
		slog.Error("create directory failed", "path", sess.Path(), "dirname", dirname, "error", err)
		h.renderView(w, sess, dashboardView{MkdirErr: "Failed to create directory. Please try again."})
		return
	}

	sess.Refresh(r.Context())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Rename renames a file or directory under the current path and re-fetches.
func (h *DashboardHandler) Rename(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	oldName := strings.TrimSpace(r.PostFormValue("old_filename"))
	newName := strings.TrimSpace(r.PostFormValue("new_filename"))

	if oldName == "" || newName == "" {
		h.renderView(w, sess, dashboardView{RenameErr: "Both old and new filenames are required"})
		return
	}
	if oldName == newName {
		h.renderView(w, sess, dashboardView{RenameErr: "New filename must be different from old filename"})
		return
	}

	if _, err := h.client.Rename(r.Context(), sess.Token(), oldName, newName, sess.Path()); err != nil {
		slog.Error("rename failed", "path", sess.Path(), "old", oldName, "new", newName, "error", err)
		h.renderView(w, sess, dashboardView{RenameErr: "Failed to rename file or directory. Please try again."})
		return
	}

	sess.Refresh(r.Context())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// AskDelete stages the confirmation prompt for one entry.
func (h *DashboardHandler) AskDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	name := r.PostFormValue("name")
	if name != "" {
		sess.RequestDelete(name, r.PostFormValue("is_dir") == "true")
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ConfirmDelete issues the delete call; on a reported success the entry is
// removed from the in-memory list by name rather than via re-fetch.
func (h *DashboardHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	target := sess.PendingDelete()
	if target == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if _, err := h.client.Delete(r.Context(), sess.Token(), target.Name, sess.Path()); err != nil {
		slog.Error("delete failed", "path", sess.Path(), "name", target.Name, "error", err)
		sess.CancelDelete()
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	sess.RemoveEntry(target.Name)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// CancelDelete discards the staged prompt.
func (h *DashboardHandler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.gate(w, r)
	if !ok {
		return
	}

	sess.CancelDelete()
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
