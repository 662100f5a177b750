// Package app implements the commands of the apiclient CLI.
// Each Execute*Command function builds what it needs from the configuration,
// runs the command and terminates the process on failure.
package app
