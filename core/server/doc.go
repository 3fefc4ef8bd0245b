// Package server holds the HTTP server configuration.
//
// The main application entry point starts the Fiber app; this package only
// defines the listen port, the API key and the shutdown bound, together with
// their validation.
package server
