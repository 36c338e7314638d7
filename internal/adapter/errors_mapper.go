package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrServerUnavailable,
	http.StatusGatewayTimeout:      ErrServerUnavailable,
}

// mapHTTPError turns a non-2xx account API response into an error that
// matches one of the package sentinels. The request path is kept in the
// message, the response body only when the server sent one.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	path := ""
	if resp.Request != nil && resp.Request.RawRequest != nil {
		path = resp.Request.RawRequest.URL.Path
	}
	detail := strings.TrimSpace(string(resp.Body()))
	if detail == "" {
		detail = http.StatusText(code)
	}

	if sentinel, ok := statusErrors[code]; ok {
		return fmt.Errorf("%w: %s %s", sentinel, path, detail)
	}
	return fmt.Errorf("http %d: %s %s", code, path, detail)
}
