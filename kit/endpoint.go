// Package kit holds the cross-transport plumbing shared by skylt services:
// the Endpoint abstraction, request-scoped context values and the MCP tool
// adapter. Service methods are wrapped as Endpoints once and exposed over
// HTTP and MCP without duplicating decode or error handling per transport.
package kit

import "context"

// Endpoint is a single service operation: typed request in, typed response
// out. Transports decode into the request type and encode the response.
type Endpoint func(ctx context.Context, request any) (any, error)

// Middleware wraps an Endpoint with cross-cutting behavior.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first one listed is outermost.
func Chain(mws ...Middleware) Middleware {
	return func(e Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			e = mws[i](e)
		}
		return e
	}
}
