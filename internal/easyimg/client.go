// Package easyimg is the typed client for the hosting backend. Every call is
// a single outstanding request with a context; there are no retries and no
// token refresh — an expired bearer token is sent as-is and rejected by the
// backend.
package easyimg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"easyimg-web/internal/model"
	"easyimg-web/pkg/apierror"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

type loginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	TurnstileToken string `json:"turnstileToken,omitempty"`
}

type loginResponse struct {
	Data *model.Credentials `json:"data"`
}

// Login exchanges credentials plus an optional bot-verification token for a
// bearer token and its expiry. Any authentication failure collapses to
// model.ErrInvalidCredentials; callers surface a generic message.
func (c *Client) Login(ctx context.Context, username string, password string, turnstileToken string) (model.Credentials, error) {
	body, err := json.Marshal(loginRequest{
		Username:       username,
		Password:       password,
		TurnstileToken: turnstileToken,
	})
	if err != nil {
		return model.Credentials{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/login", bytes.NewReader(body))
	if err != nil {
		return model.Credentials{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("%w: %v", model.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Credentials{}, model.ErrInvalidCredentials
	}

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.Credentials{}, err
	}
	if parsed.Data == nil || parsed.Data.Token == "" {
		return model.Credentials{}, model.ErrInvalidCredentials
	}

	return *parsed.Data, nil
}

// FileList fetches one page of the listing for a path.
func (c *Client) FileList(ctx context.Context, token string, path string, page int) (model.ListResult, error) {
	query := url.Values{}
	query.Set("path", path)
	query.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/filelist?"+query.Encode(), nil)
	if err != nil {
		return model.ListResult{}, err
	}

	var result model.ListResult
	if err := c.doJSON(req, token, &result); err != nil {
		return model.ListResult{}, err
	}

	return result, nil
}

type createDirResponse struct {
	Message string `json:"message"`
}

// CreateDirectory creates dirname under path.
func (c *Client) CreateDirectory(ctx context.Context, token string, dirname string, path string) error {
	query := url.Values{}
	query.Set("dirname", dirname)
	query.Set("path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/addfile?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	var parsed createDirResponse
	return c.doJSON(req, token, &parsed)
}

type deleteResponse struct {
	IsDir bool `json:"is_dir"`
}

// Delete removes filename under path. The backend reports whether the target
// was a directory.
func (c *Client) Delete(ctx context.Context, token string, filename string, path string) (bool, error) {
	query := url.Values{}
	query.Set("filename", filename)
	query.Set("path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/v1/delete?"+query.Encode(), nil)
	if err != nil {
		return false, err
	}

	var parsed deleteResponse
	if err := c.doJSON(req, token, &parsed); err != nil {
		return false, err
	}

	return parsed.IsDir, nil
}

type renameResponse struct {
	File model.FileEntry `json:"file"`
}

// Rename renames oldName to newName under path.
func (c *Client) Rename(ctx context.Context, token string, oldName string, newName string, path string) (model.FileEntry, error) {
	query := url.Values{}
	query.Set("old_filename", oldName)
	query.Set("new_filename", newName)
	query.Set("path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/rename?"+query.Encode(), nil)
	if err != nil {
		return model.FileEntry{}, err
	}

	var parsed renameResponse
	if err := c.doJSON(req, token, &parsed); err != nil {
		return model.FileEntry{}, err
	}

	return parsed.File, nil
}

type adminUploadResponse struct {
	Message string          `json:"message"`
	File    model.FileEntry `json:"file"`
}

// Upload sends one file to the admin endpoint, which accepts a single
// multipart "file" field per call.
func (c *Client) Upload(ctx context.Context, token string, path string, filename string, content io.Reader) (model.FileEntry, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return model.FileEntry{}, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return model.FileEntry{}, err
	}
	if err := writer.Close(); err != nil {
		return model.FileEntry{}, err
	}

	query := url.Values{}
	query.Set("path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/upload?"+query.Encode(), &buf)
	if err != nil {
		return model.FileEntry{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var parsed adminUploadResponse
	if err := c.doJSON(req, token, &parsed); err != nil {
		return model.FileEntry{}, err
	}

	return parsed.File, nil
}

// UploadFile is one file offered to the public upload endpoint.
type UploadFile struct {
	Name    string
	Content io.Reader
}

type publicUploadResponse struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Results []model.UploadResult `json:"results"`
}

// PublicUpload sends files to the anonymous endpoint under a single
// multipart "files" field. The backend answers 200 when everything landed
// and 207 when only part of the batch did; each result is tagged
// individually either way.
func (c *Client) PublicUpload(ctx context.Context, files []UploadFile) ([]model.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		part, err := writer.CreateFormFile("files", file.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	var parsed publicUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, apierror.FromStatus(resp.StatusCode)
		}
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		return nil, apierror.New("UPLOAD_FAILED", nonEmpty(parsed.Message, "upload failed"), resp.StatusCode)
	}
	if parsed.Code != http.StatusOK && parsed.Code != http.StatusMultiStatus {
		return nil, apierror.New("UPLOAD_FAILED", nonEmpty(parsed.Message, "upload failed"), resp.StatusCode)
	}

	return parsed.Results, nil
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doJSON runs an authenticated request and decodes the response body into
// out. Non-success statuses are mapped onto the error taxonomy: 401 means
// the backend rejected the bearer token, everything else becomes a coded
// backend error.
func (c *Client) doJSON(req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return model.ErrSessionExpired
	}
	if resp.StatusCode == http.StatusNotFound {
		return model.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			message := nonEmpty(envelope.Error, envelope.Message)
			if message != "" {
				return apierror.New("BACKEND_ERROR", message, resp.StatusCode)
			}
		}
		return apierror.FromStatus(resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func nonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
