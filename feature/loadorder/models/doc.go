// Package models defines the request and response bodies of the load order API.
package models
