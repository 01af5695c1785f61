// Package commands defines the searchbyimage CLI.
//
// Commands
//
//   - serve          Run the bot against the chat gateway
//   - search         Search one image URL and print the reply
//   - history        List recent searches
//   - config init    Create the settings directory and file
//   - key set|show   Seal the API key under a passphrase, or inspect it
//   - describe       Print the plugin descriptor
//
// # Implementation
//
// The root command loads the runtime configuration and installs the logger
// before any subcommand runs. Commands that search resolve the API key (env,
// settings file, then sealed key) and build the dependency graph through
// internal/app.
package commands
