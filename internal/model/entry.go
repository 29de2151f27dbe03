package model

// FileEntry is one item within a directory listing as reported by the
// backend. Size and URL are meaningful only for regular files.
type FileEntry struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	IsDir   bool   `json:"is_dir"`
	ModTime string `json:"mod_time"`
	URL     string `json:"url"`
}

// ListResult is the outcome of one listing fetch: the entries for a single
// path at a single page plus the backend-reported pagination summary.
type ListResult struct {
	Path       string      `json:"path"`
	Files      []FileEntry `json:"files"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalFiles int         `json:"total_files"`
}

// UploadResult is one per-file outcome of a public multi-file upload. The
// backend tags every file success or failure individually.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Status   string `json:"status"`
}

const uploadStatusSuccess = "success"

// Succeeded reports whether the backend accepted this file.
func (r UploadResult) Succeeded() bool {
	return r.Status == uploadStatusSuccess
}

// Credentials is what a successful login yields: the bearer token and its
// absolute expiry as epoch seconds.
type Credentials struct {
	Token    string `json:"token"`
	ExpireAt int64  `json:"expire_at"`
}
