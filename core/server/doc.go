// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from this Config: the listen
// port, the API key enforced by the auth middleware, and whether the Swagger
// UI is mounted.
package server
