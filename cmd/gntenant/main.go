// Package main provides the gntenant CLI application.
// gntenant manages per-tenant schemas of a shared PostgreSQL database.
package main

import "github.com/gnames/gntenant/cmd"

func main() {
	cmd.Execute()
}
