// Package logger provides a structured logging facility based on Zap.
//
// Level "debug" selects zap's development config; any other level selects the
// production config at that level. Format chooses between json and console
// encoding.
//
// WithRayID attaches the request id stored by the rayid middleware, so every
// line written while serving a request can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	l := logger.WithRayID(log, c)
//	l.Error("Sync failed", zap.Error(err))
package logger
