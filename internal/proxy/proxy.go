// Package proxy forwards /api/* to the backend origin so browser-side
// requests stay same-origin, taking over the rewrite rule the front-end
// depends on.
package proxy

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// New builds a reverse proxy for the backend origin. Request paths are
// passed through unchanged; only scheme and host are rewritten.
func New(apiHost string) (http.Handler, error) {
	target, err := url.Parse(apiHost)
	if err != nil {
		return nil, err
	}

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Scheme = target.Scheme
			pr.Out.URL.Host = target.Host
			pr.Out.Host = target.Host
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("api proxy failed", "path", r.URL.Path, "error", err)
			http.Error(w, "backend unavailable", http.StatusBadGateway)
		},
	}

	return rp, nil
}
