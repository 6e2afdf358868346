// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Environment variables, optionally sourced from a local .env file,
// override the file for deployment-specific settings.
package config
