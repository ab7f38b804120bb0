//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates an isolated directory used as $HOME
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "taginput-e2e-*")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	tf.workspace = dir
	return dir, nil
}

// WriteCatalog writes a plain text catalog with one email per line
func (tf *TUITestFramework) WriteCatalog(name string, emails ...string) (string, error) {
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(strings.Join(emails, "\n")+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write catalog: %w", err)
	}
	return path, nil
}

// StartWithCatalog starts the app against a fresh workspace and catalog
func (tf *TUITestFramework) StartWithCatalog(extra ...string) error {
	workspace, err := tf.CreateTestWorkspace()
	if err != nil {
		return err
	}
	catalog, err := tf.WriteCatalog("contacts.txt", "john@google.com", "jane@google.com", "fake@email.com")
	if err != nil {
		return err
	}
	args := append([]string{
		"--catalog", catalog,
		"--debounce", "50",
		"--log-file", filepath.Join(workspace, "taginput.log"),
	}, extra...)
	return tf.StartApp(args...)
}
