package lunte

import (
	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/settings"
)

const (
	// Command runs lunte reading source from standard input.
	Command = "lunte --stdin"

	// DisplayName is the label shown next to diagnostics.
	DisplayName = "Lunte"

	// Pattern matches one diagnostic line: "<path>:<line>:<col>  <message>".
	Pattern = `^.+:(?P<line>\d+):(?P<col>\d+)\s\s(?P<message>.+)`

	// Package is the npm package name used for dependency detection and install.
	Package = "lunte"
)

// DefaultSettings returns the options lunte ships with.
func DefaultSettings() settings.Settings {
	return settings.Settings{
		settings.KeyEnableIfDependency:     true,
		settings.KeyDisableIfNotDependency: false,
		settings.KeySelector:               "source.js, source.jsx",
	}
}

// Descriptor is the lunte integration record.
var Descriptor = linter.MustDescriptor(DisplayName, Command, Pattern, DefaultSettings())
