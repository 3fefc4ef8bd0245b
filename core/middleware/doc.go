// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: a per-request id stored in the context and echoed in the
//     response headers for tracing.
//
// Both are registered globally in the start command.
package middleware
