//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs all test suites
func (t Test) All() error {
	mg.Deps(t.Unit, t.Race)
	return nil
}

// Runs the unit tests
func (Test) Unit() error {
	fmt.Println("running unit tests")
	return goTest("./...", "-tags", "ci", "-timeout", "10m")
}

// Runs the unit tests with the race detector
func (Test) Race() error {
	fmt.Println("running unit tests with race detection")
	return goTest("./...", "-tags", "ci", "-race", "-timeout", "15m")
}

// Runs the unit tests and writes a coverage profile
func (Test) Cover() error {
	fmt.Println("running unit tests with coverage")
	return goTest("./...", "-tags", "ci", "-timeout", "10m", "-coverprofile=coverage.txt", "-covermode=atomic")
}

// Runs the benchmarks
func (Test) Bench() error {
	fmt.Println("running benchmarks")
	return goTest("./...", "-bench=.", "-benchmem", "-run=^$")
}
