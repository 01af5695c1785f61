package types

// Settings is the on-disk plugin settings file.
type Settings struct {
	APIKey string `json:"apiKey" mapstructure:"apikey"`
}

// PluginDescriptor identifies the bot to its chat host.
type PluginDescriptor struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Info    string `json:"info" yaml:"info"`
	Author  string `json:"author" yaml:"author"`
}
