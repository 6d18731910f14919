// Package config loads, normalizes, and validates owlwatch's TOML
// configuration.
//
// Load resolves the config path (explicit flag, then the user config dir,
// then a project-local file), overlays the file onto Default(), expands
// paths, and validates the result, so the rest of the program only ever
// sees a usable Config.
package config
