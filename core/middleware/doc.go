// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: a request id (RayID) stored in the context and echoed in the
//     response headers for tracing.
package middleware
