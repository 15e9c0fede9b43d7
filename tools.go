//go:build tools
// +build tools

package tools

// Most tools are managed in the magefiles module. These tools are just
// the ones that can't run from a submodule at the moment.
import (
	// support running mage with go run mage.go
	_ "github.com/magefile/mage/mage"
)
