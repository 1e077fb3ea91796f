package postgrest

import (
	"net/http"
	"strconv"
	"strings"
)

// extractCount returns the total row count PostgREST reports in the
// Content-Range header (e.g. "0-24/3573"). A count is only returned when the
// request asked for one with a Prefer count directive; an unknown total ("*")
// or a range without a total yields nil.
func extractCount(reqHeader, respHeader http.Header) *int64 {
	requested := false
	for _, v := range reqHeader.Values("Prefer") {
		if parsePrefer(v).WantsCount() {
			requested = true
			break
		}
	}
	if !requested {
		return nil
	}

	contentRange := respHeader.Get("Content-Range")
	_, total, found := strings.Cut(contentRange, "/")
	if !found {
		return nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(total), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
