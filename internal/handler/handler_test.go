package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"easyimg-web/internal/easyimg"
	"easyimg-web/internal/listing"
	"easyimg-web/internal/model"
	"easyimg-web/internal/session"
	"easyimg-web/web"
)

// fakeAPI stands in for the backend client across the handler tests. Calls
// are recorded so tests can assert what reached the backend and what never
// should have.
type fakeAPI struct {
	creds         model.Credentials
	loginErr      error
	logins        int
	lastTurnstile string

	lists     map[string]model.ListResult
	listErr   error
	listCalls int

	uploads   []string
	uploadErr error

	dirs     []string
	mkdirErr error

	deleted   []string
	deleteErr error

	renames   [][2]string
	renameErr error

	publicNames   []string
	publicResults []model.UploadResult
	publicErr     error
}

func (f *fakeAPI) Login(_ context.Context, _ string, _ string, turnstileToken string) (model.Credentials, error) {
	f.logins++
	f.lastTurnstile = turnstileToken
	if f.loginErr != nil {
		return model.Credentials{}, f.loginErr
	}
	return f.creds, nil
}

func (f *fakeAPI) FileList(_ context.Context, _ string, path string, page int) (model.ListResult, error) {
	f.listCalls++
	if f.listErr != nil {
		return model.ListResult{}, f.listErr
	}
	if result, ok := f.lists[path]; ok {
		result.Page = page
		return result, nil
	}
	return model.ListResult{Path: path, Page: page}, nil
}

func (f *fakeAPI) Upload(_ context.Context, _ string, _ string, filename string, _ io.Reader) (model.FileEntry, error) {
	if f.uploadErr != nil {
		return model.FileEntry{}, f.uploadErr
	}
	f.uploads = append(f.uploads, filename)
	return model.FileEntry{Name: filename}, nil
}

func (f *fakeAPI) CreateDirectory(_ context.Context, _ string, dirname string, _ string) error {
	if f.mkdirErr != nil {
		return f.mkdirErr
	}
	f.dirs = append(f.dirs, dirname)
	return nil
}

func (f *fakeAPI) Delete(_ context.Context, _ string, filename string, _ string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	f.deleted = append(f.deleted, filename)
	return false, nil
}

func (f *fakeAPI) Rename(_ context.Context, _ string, oldName string, newName string, _ string) (model.FileEntry, error) {
	if f.renameErr != nil {
		return model.FileEntry{}, f.renameErr
	}
	f.renames = append(f.renames, [2]string{oldName, newName})
	return model.FileEntry{Name: newName}, nil
}

func (f *fakeAPI) PublicUpload(_ context.Context, files []easyimg.UploadFile) ([]model.UploadResult, error) {
	for _, file := range files {
		f.publicNames = append(f.publicNames, file.Name)
	}
	if f.publicErr != nil {
		return nil, f.publicErr
	}
	return f.publicResults, nil
}

type fixture struct {
	api       *fakeAPI
	sessions  *session.Manager
	listings  *listing.Store
	login     *LoginHandler
	dashboard *DashboardHandler
	home      *HomeHandler
}

func newFixture(t *testing.T, api *fakeAPI) *fixture {
	t.Helper()

	renderer, err := NewRenderer(web.Assets)
	require.NoError(t, err)

	sessions := session.NewManager("test-secret", false)
	listings := listing.NewStore(api, 20)

	return &fixture{
		api:       api,
		sessions:  sessions,
		listings:  listings,
		login:     NewLoginHandler(api, sessions, listings, renderer, "site-key-under-test"),
		dashboard: NewDashboardHandler(api, sessions, listings, renderer, 10<<20),
		home:      NewHomeHandler(api, renderer, 10<<20),
	}
}

// authenticate issues a valid session and returns the cookies a logged-in
// browser would send back.
func (f *fixture) authenticate(t *testing.T) []*http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	_, err := f.sessions.Issue(rec, model.Credentials{
		Token:    "backend-token",
		ExpireAt: time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	return rec.Result().Cookies()
}

func postForm(target string, values url.Values, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

func getPage(target string, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

// postFiles builds a multipart request with each name under the given field.
func postFiles(t *testing.T, target string, field string, names []string, cookies []*http.Cookie) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, location, rec.Header().Get("Location"))
}
