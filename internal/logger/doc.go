// Package logger provides a structured logging solution using the Zap logging library.
// It keeps a process-wide sugared logger with an atomic level and exposes
// context-aware helpers, so request-scoped fields (such as a request ID)
// travel with the context instead of being passed around explicitly.
package logger
