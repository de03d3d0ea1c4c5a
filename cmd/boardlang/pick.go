package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/driver"
)

// programCandidates lists the AST documents in dir, skipping the run
// configuration.
func programCandidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == driver.ConfigFileName {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yml", ".yaml", ".json":
			out = append(out, filepath.Join(dir, name))
		}
	}
	sort.Strings(out)
	return out, nil
}

// pickProgram lets the user choose a program from dir with a fuzzy finder.
func pickProgram(dir string) (string, error) {
	candidates, err := programCandidates(dir)
	if err != nil {
		return "", &hostError{err: err}
	}
	if len(candidates) == 0 {
		return "", hostErrorf("no programs found in %s", dir)
	}
	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return filepath.Base(candidates[i])
		},
		fuzzyfinder.WithPromptString("Select program: "),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", hostErrorf("no program selected")
	}
	if err != nil {
		return "", &hostError{err: err}
	}
	return candidates[idx], nil
}
