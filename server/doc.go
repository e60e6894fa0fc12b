// Package server provides the HTTP API for protokoll: submitting
// transcript jobs, polling their state, and the operational endpoints
// (/health, /info, /metrics).
//
// The server is backed by Gin with h2c so HTTP/2 works without TLS.
// Middleware (server/middleware) covers panic recovery, request IDs,
// CORS, body-size limits, and request logging.
package server
