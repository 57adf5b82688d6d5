// Package config loads the application configuration and opens the PostgreSQL connections it describes.
//
// Values come from a YAML file (CONFIG_PATH, fallback ./config.yaml) and environment variables,
// with env-default tags filling the gaps.
package config
