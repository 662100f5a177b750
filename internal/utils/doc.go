// Package utils provides a collection of small helpers shared by the client and the CLI:
// content type checks, safe integer conversion, and parsing of key-value pairs
// given on the command line.
package utils
