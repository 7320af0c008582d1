package main

import (
	// Import linters for registration side-effects.
	// Each linter's register.go file contains an init() function
	// that registers the linter with the global registry.
	_ "github.com/holepunchto/lunte/internal/linter/lunte"
)
