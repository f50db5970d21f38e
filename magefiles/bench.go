//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Bench mg.Namespace

// Runs every workload plus the handoff runs and appends the session to the results file.
func (Bench) Run() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/bench", "run", "--handoff", "--json", "--progress"), withStream())
	return err
}

// Prints the last stored session as a markdown table.
func (Bench) Table() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/bench", "table"), withStream())
	return err
}

// Renders one chart per workload from the stored sessions.
func (Bench) Graph() error {
	mg.Deps(Bench.Run)
	_, err := executeCmd("go", withArgs("run", "./cmd/buildGraph"), withStream())
	return err
}
