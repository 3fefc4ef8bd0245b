// Package config loads the application configuration.
//
// Values come from environment variables, optionally seeded from a .env file.
// Defaults live next to each field as `default:"..."` struct tags and nested
// keys map to SECTION_KEY variables (LOADORDER_DEBOUNCE_MS -> loadorder.debounce_ms).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and shutdown bound
//   - Database: lock persistence (sqlite or MySQL)
//   - Storage: MinIO/S3 credentials and bucket for published plugins.txt files
//   - Log: logging level and format
//   - LoadOrder: game, default profile, debounce window and publishing
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.LoadOrder.QuietWindow())
package config
