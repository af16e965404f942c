// Package server exposes document generation over HTTP.
//
// Routes:
//
//	POST /api/generate-docx  generate a document, JSON in and JSON out
//	GET  /healthz            liveness probe
//	GET  /metrics            Prometheus metrics (when a handler is configured)
//	GET  /                   demo page (when enabled)
//
// Generation errors never leak internals: invalid shapes get a fixed 400
// message and everything else the generic 500 message. The underlying error
// is logged with the request ID.
package server
