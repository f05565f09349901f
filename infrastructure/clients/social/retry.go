package social

import (
	"net/http"
	"strconv"
)

// retryAfterSeconds reads a Retry-After header, falling back to def when the
// header is absent or unparseable.
func retryAfterSeconds(resp *http.Response, def int) int {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
