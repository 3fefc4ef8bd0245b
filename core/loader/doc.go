// Package loader registers features on the Fiber application.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. LoadAll loads enabled features in
// registration order and rejects duplicate names.
package loader
