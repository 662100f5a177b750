// Package config loads and validates the API client configuration.
//
// Values come from a YAML file read with Viper, can be overridden through
// APICLIENT_* environment variables and finally by command-line flags.
package config
