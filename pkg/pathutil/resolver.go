// Package pathutil provides centralized path management for the ledger
// workspace: the database file and the document attachment store.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths inside one ledger workspace.
type PathResolver struct {
	ledgerRoot     string
	databasePath   string
	attachmentsDir string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// LedgerRoot is the workspace directory (e.g. ~/accounting/ledger)
	LedgerRoot string
	// DatabasePath is the SQLite database file holding every section
	DatabasePath string
	// AttachmentsDir holds the documents transactions reference
	AttachmentsDir string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {LedgerRoot}/ytx.db.
// If AttachmentsDir is empty, it defaults to {LedgerRoot}/attachments.
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.LedgerRoot, "ytx.db")
	}

	attachmentsDir := config.AttachmentsDir
	if attachmentsDir == "" {
		attachmentsDir = filepath.Join(config.LedgerRoot, "attachments")
	}

	return &PathResolver{
		ledgerRoot:     config.LedgerRoot,
		databasePath:   dbPath,
		attachmentsDir: attachmentsDir,
	}
}

// LedgerRoot returns the workspace directory.
func (r *PathResolver) LedgerRoot() string {
	return r.ledgerRoot
}

// DatabasePath returns the SQLite database file path.
func (r *PathResolver) DatabasePath() string {
	return r.databasePath
}

// AttachmentsDir returns the document attachment directory.
func (r *PathResolver) AttachmentsDir() string {
	return r.attachmentsDir
}

// AttachmentPath resolves one stored document reference to a file path.
// Absolute references are kept as-is; relative ones live under the
// attachments directory.
func (r *PathResolver) AttachmentPath(document string) string {
	if filepath.IsAbs(document) {
		return document
	}
	return filepath.Join(r.attachmentsDir, document)
}

// EnsureDirs creates the workspace directories if missing.
func (r *PathResolver) EnsureDirs() error {
	for _, dir := range []string{r.ledgerRoot, r.attachmentsDir, filepath.Dir(r.databasePath)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
