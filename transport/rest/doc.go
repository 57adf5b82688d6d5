// Package rest exposes the rental commands and queries over HTTP with echo.
//
// Command routes are throttled per client by a ratelimit.Limiter. Errors are
// rendered as {kind, message}, with the status derived from the core.ErrorKind.
package rest
