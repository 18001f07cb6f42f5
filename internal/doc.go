// Package internal holds response plumbing shared by the middlewares and the
// HTTP server runtime used by the example app.
package internal
