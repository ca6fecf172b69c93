package memory

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

type inboundHeadersKey struct{}

// WithInboundHeaders returns a context carrying the headers of the request
// that triggered the current tool call. Requests made with that context
// forward its Authorization header to the API.
func WithInboundHeaders(ctx context.Context, h http.Header) context.Context {
	return context.WithValue(ctx, inboundHeadersKey{}, h)
}

// InboundHeadersFromRequest captures the headers of r. Its signature matches
// the HTTP context hooks of the MCP transports.
func InboundHeadersFromRequest(ctx context.Context, r *http.Request) context.Context {
	h := r.Header.Clone()
	if h.Get("Authorization") != "" {
		log.Debug().Msg("forwarding inbound authorization to resource API")
	} else {
		log.Debug().Msg("no authorization found in inbound request headers")
	}
	return WithInboundHeaders(ctx, h)
}

func inboundHeaders(ctx context.Context) http.Header {
	h, _ := ctx.Value(inboundHeadersKey{}).(http.Header)
	if h == nil {
		return http.Header{}
	}
	return h
}
