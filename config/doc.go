// Package config provides configuration loading and validation for the
// protokoll binaries.
//
// Configuration is defined in YAML, with .env files and environment
// variables layered on top via Viper. Load searches standard locations
// (cmd/<service>/config.yml, ./config.yml) unless explicit paths are given.
//
//	cfg, err := config.Load("protokolld")
//
// Environment variables override file values using underscore-separated
// paths (e.g. REDIS_ADDR, PIPELINE_OUTPUT_ROOT).
package config
