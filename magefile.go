//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var binaries = []string{"onetoone", "countpos"}

// Default target to run when none is specified
var Default = Build

// Build compiles both binaries into the repository root
func Build() error {
	for _, name := range binaries {
		fmt.Printf("Building %s...\n", name)
		if err := sh.RunV("go", "build", "-o", name, "./cmd/"+name); err != nil {
			return err
		}
	}
	return nil
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs both binaries into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	for _, name := range binaries {
		if err := sh.RunV("go", "install", "./cmd/"+name); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes build artifacts
func Clean() error {
	for _, name := range binaries {
		if err := os.RemoveAll(name); err != nil {
			return err
		}
	}
	return nil
}
