package http

import "net/http"

type keyTransport struct {
	header    string
	key       string
	transport http.RoundTripper
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.key != "" {
		reqCopy.Header.Set(t.header, t.key)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAPIKey authenticates every request with the given key in a custom
// header. Azure services use "api-key".
func WithAPIKey(header, key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &keyTransport{
			header:    header,
			key:       key,
			transport: rt,
		}
	})
}
