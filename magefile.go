//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

type Funcprov mg.Namespace

// Build compiles the funcprov binary into ./bin.
func (f Funcprov) Build(ctx context.Context) error {
	cmdStr, cmd := runIn(
		".",
		"go",
		"build",
		"-o",
		"./bin/funcprov",
		"./cli/funcprov",
	)
	fmt.Println(cmdStr)
	return cmd()
}

// Test runs the unit tests. None of them require the Azure CLI or network access.
func (f Funcprov) Test(ctx context.Context) error {
	cmdStr, cmd := runIn(
		".",
		"go",
		"test",
		"./cli/funcprov/...",
	)
	fmt.Println(cmdStr)
	return cmd()
}

func (f Funcprov) Vet(ctx context.Context) error {
	cmdStr, cmd := runIn(
		".",
		"go",
		"vet",
		"./cli/funcprov/...",
	)
	fmt.Println(cmdStr)
	return cmd()
}

func runIn(cwd string, cmd string, args ...string) (string, func() error) {
	c := exec.Command(cmd, args...)
	c.Dir = cwd
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.String(), func() error {
		return c.Run()
	}
}
