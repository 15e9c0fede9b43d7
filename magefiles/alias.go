//go:build mage

package main

var Aliases = map[string]any{
	"test": Test.Unit,
	"lint": Lint.All,
}
