//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Extract builds the CLI and runs it over every document in documents/,
// writing the obligation matrix to output/.
func Extract() error {
	mg.Deps(Build)

	entries, err := os.ReadDir("documents")
	if err != nil {
		return err
	}

	args := []string{"extract", "--output", "output"}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		args = append(args, filepath.Join("documents", e.Name()))
	}

	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
