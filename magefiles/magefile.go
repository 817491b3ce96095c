//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Test runs the unit tests of every package.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Vet runs go vet on every package.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Check runs Vet and then Test.
func Check() {
	mg.SerialDeps(Vet, Test)
}

type Examples mg.Namespace

// Build compiles every example into bin/.
func (Examples) Build() error {
	for _, name := range examples {
		fmt.Println("Building", name)
		if _, err := executeCmd("go", withArgs("build", "-o", "bin/"+name, "./examples/"+name)); err != nil {
			return err
		}
	}
	return nil
}

// Aliens runs the aliens example.
func (Examples) Aliens() error {
	return runExample("aliens")
}

// Wanderer runs the wanderer example.
func (Examples) Wanderer() error {
	return runExample("wanderer")
}

var examples = []string{"aliens", "wanderer"}

// runExample runs an example from its own directory so its static/ assets
// and config file resolve.
func runExample(name string) error {
	_, err := executeCmd("go", withArgs("run", "."), withDir(filepath.Join("examples", name)), withStream())
	return err
}
