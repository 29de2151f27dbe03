package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"easyimg-web/internal/model"
)

func TestHomePage(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeAPI{})

	rec := httptest.NewRecorder()
	f.home.Page(rec, getPage("/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `name="files"`)
}

func TestHomeUpload(t *testing.T) {
	t.Parallel()

	t.Run("only the files the backend accepted are rendered with their snippets", func(t *testing.T) {
		f := newFixture(t, &fakeAPI{publicResults: []model.UploadResult{
			{Filename: "a.png", URL: "https://img/a.png", Size: 1024, Status: "success"},
			{Filename: "b.png", Status: "failed"},
			{Filename: "c.png", URL: "https://img/c.png", Size: 2048, Status: "success"},
		}})

		rec := httptest.NewRecorder()
		f.home.Upload(rec, postFiles(t, "/upload", "files", []string{"a.png", "b.png", "c.png"}, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []string{"a.png", "b.png", "c.png"}, f.api.publicNames)

		body := rec.Body.String()
		require.Contains(t, body, "![a.png](https://img/a.png)")
		require.Contains(t, body, "[img]https://img/c.png[/img]")
		require.NotContains(t, body, "b.png")
	})

	t.Run("a wholly failed batch renders the retry message", func(t *testing.T) {
		f := newFixture(t, &fakeAPI{publicErr: errors.New("boom")})

		rec := httptest.NewRecorder()
		f.home.Upload(rec, postFiles(t, "/upload", "files", []string{"a.png"}, nil))

		require.Contains(t, rec.Body.String(), "Upload failed. Please try again.")
	})

	t.Run("a submit without files never reaches the backend", func(t *testing.T) {
		f := newFixture(t, &fakeAPI{})

		rec := httptest.NewRecorder()
		f.home.Upload(rec, postFiles(t, "/upload", "unused", nil, nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "No files selected")
		require.Empty(t, f.api.publicNames)
	})
}
