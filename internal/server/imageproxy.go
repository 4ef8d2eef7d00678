package server

import (
	"io"
	"net/http"
	"net/url"

	"github.com/craftlens/craftlens/pkg/cache"
	"github.com/craftlens/craftlens/pkg/errors"
)

// maxImageBytes caps one proxied image; wiki thumbnails are far smaller.
const maxImageBytes = 5 << 20

// handleImage proxies external thumbnail images so the browser client never
// loads third-party origins directly. Bytes are cached; the upstream
// content type is not preserved across the cache, so responses are sniffed.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("src")
	if src == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "src parameter is required"))
		return
	}
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "src must be an absolute http(s) URL"))
		return
	}

	key := cache.ImageKey(src)
	if data, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		w.Header().Set("X-Cache", "HIT")
		_, _ = w.Write(data)
		return
	}

	resp, err := s.client.Get(src)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeNetwork, err, "fetch image"))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "upstream returned %d", resp.StatusCode))
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeNetwork, err, "read image"))
		return
	}

	if err := s.cache.Set(r.Context(), key, data, cache.ImageTTL); err != nil {
		s.logger.Warn("cache image failed", "err", err)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	_, _ = w.Write(data)
}
