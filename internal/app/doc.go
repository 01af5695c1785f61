// Package app wires application dependencies for the CLI.
//
// It builds the concrete stores, the SauceNAO client, the gateway client and
// the high-level services from a loaded config.Config, exposing them via the
// Wire struct for commands to use.
package app
