// Package config loads, normalizes, and validates verilens CLI
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the VERILENS_API_KEY
// environment fallback. The Config type centralizes every knob the CLI
// needs so credentials, polling policy, and local storage paths are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
