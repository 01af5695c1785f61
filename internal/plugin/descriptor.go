// Package plugin describes the bot to its chat host.
package plugin

import (
	"gopkg.in/yaml.v3"

	"searchbyimage/internal/domain"
)

// Version is the plugin version. Release builds override it with
// -ldflags "-X searchbyimage/internal/plugin.Version=...".
var Version = "1.1"

const (
	ID     = "searchbyimage.plugin"
	Name   = "searchByImage"
	Info   = "Image searching through the SauceNAO API."
	Author = "Jobove"
)

// Descriptor returns the descriptor registered with the gateway.
func Descriptor() domain.PluginDescriptor {
	return domain.PluginDescriptor{
		ID:      ID,
		Name:    Name,
		Version: Version,
		Info:    Info,
		Author:  Author,
	}
}

// MarshalYAML renders d for display.
func MarshalYAML(d domain.PluginDescriptor) ([]byte, error) {
	return yaml.Marshal(d)
}
