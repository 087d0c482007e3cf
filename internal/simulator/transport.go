package simulator

import (
	"net/http"
	"net/http/httptest"
)

// Transport returns an http.RoundTripper that serves every request from
// this server without opening a socket. Plugging it into a client makes
// the client talk to the simulator while believing it talks to a remote
// API, so swapping in a real server is a one-line change.
func (s *Server) Transport() http.RoundTripper {
	return handlerTransport{handler: s}
}

type handlerTransport struct {
	handler http.Handler
}

func (t handlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	rec := httptest.NewRecorder()
	t.handler.ServeHTTP(rec, req)
	// a handler abandoned mid-flight writes nothing useful; surface the
	// cancellation instead of an empty 200
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}
