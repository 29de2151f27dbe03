package handler

import (
	"context"
	"log/slog"
	"net/http"

	"easyimg-web/internal/easyimg"
	"easyimg-web/internal/model"
	"easyimg-web/internal/share"
)

type publicUploader interface {
	PublicUpload(ctx context.Context, files []easyimg.UploadFile) ([]model.UploadResult, error)
}

// HomeHandler serves the public upload page.
type HomeHandler struct {
	client        publicUploader
	renderer      *Renderer
	maxUploadSize int64
}

func NewHomeHandler(client publicUploader, renderer *Renderer, maxUploadSize int64) *HomeHandler {
	return &HomeHandler{client: client, renderer: renderer, maxUploadSize: maxUploadSize}
}

type uploadedFileView struct {
	Filename string
	Size     int64
	Links    share.Links
}

type homeView struct {
	Uploaded  []uploadedFileView
	UploadErr string
}

func (h *HomeHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, http.StatusOK, "home.html", homeView{})
}

// Upload runs the anonymous multi-file upload. Per-file failures reported
// inside a 207 body are filtered out of the rendered results.
func (h *HomeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.renderer.render(w, http.StatusBadRequest, "home.html", homeView{UploadErr: "Upload failed. Please try again."})
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		h.renderer.render(w, http.StatusBadRequest, "home.html", homeView{UploadErr: "No files selected"})
		return
	}

	files := make([]easyimg.UploadFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		opened, err := header.Open()
		if err != nil {
			h.renderer.render(w, http.StatusBadRequest, "home.html", homeView{UploadErr: "Upload failed. Please try again."})
			return
		}
		defer opened.Close()
		files = append(files, easyimg.UploadFile{Name: header.Filename, Content: opened})
	}

	results, err := h.client.PublicUpload(r.Context(), files)
	if err != nil {
		slog.Error("public upload failed", "error", err)
		h.renderer.render(w, http.StatusOK, "home.html", homeView{UploadErr: "Upload failed. Please try again."})
		return
	}

	uploaded := make([]uploadedFileView, 0, len(results))
	dropped := 0
	for _, result := range results {
		if !result.Succeeded() {
			dropped++
			continue
		}
		uploaded = append(uploaded, uploadedFileView{
			Filename: result.Filename,
			Size:     result.Size,
			Links:    share.For(result.Filename, result.URL),
		})
	}
	if dropped > 0 {
		slog.Warn("upload batch partially failed", "dropped", dropped, "accepted", len(uploaded))
	}

	h.renderer.render(w, http.StatusOK, "home.html", homeView{Uploaded: uploaded})
}
