/*
Copyright © 2025 Oleg Shokin

This file is the entry point for the apiclient application.
It initializes and executes the root command defined in the cmd package.
*/
package main

import "github.com/oshokin/apiclient/cmd"

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
