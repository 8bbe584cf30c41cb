package ponto

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
)

// NewProxy forwards requests under prefix to the vendor base URL with the prefix removed,
// so {prefix}/ListarMarcacoes reaches {BaseURL}/ListarMarcacoes.
func NewProxy(baseURL, prefix string) (http.Handler, error) {
	target, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor base URL: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid vendor base URL %q", baseURL)
	}
	prefix = strings.TrimRight(prefix, "/")

	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.Out.URL.Path = strings.TrimPrefix(r.In.URL.Path, prefix)
			r.Out.URL.RawPath = ""
			r.SetURL(target)
			r.Out.Host = target.Host
			// Credentials for the local API are not the vendor's business.
			r.Out.Header.Del("Authorization")
			r.Out.Header.Del("Cookie")
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("Vendor proxy request failed", "path", r.URL.Path, "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"BAD_GATEWAY","message":"time clock vendor is unavailable"}}`))
		},
	}
	return proxy, nil
}
