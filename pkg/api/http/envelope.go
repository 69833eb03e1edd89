package http

import (
	"net/http"
	"time"
)

// Envelope is the uniform outer structure wrapping every successful
// response. Data passes through from the handler unchanged and is omitted
// only when the handler produced none; an empty mapping is serialized.
type Envelope struct {
	Message    string `json:"message"`
	Method     string `json:"method"`
	StatusCode int    `json:"status-code"`
	Timestamp  string `json:"timestamp"`
	URL        string `json:"url"`
	Data       any    `json:"data,omitempty"`
}

// result is a handler's raw output before envelope wrapping.
type result struct {
	message string
	status  int
	data    any
}

// newEnvelope wraps a handler's raw result for the inbound request. The
// timestamp is generated here, at response-construction time.
func newEnvelope(r *http.Request, res result) Envelope {
	return Envelope{
		Message:    res.message,
		Method:     r.Method,
		StatusCode: res.status,
		Timestamp:  time.Now().Format(time.RFC3339),
		URL:        requestURL(r),
		Data:       res.data,
	}
}

// requestURL reconstructs the full URL of the request as served.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.RequestURI
}
