package store

import (
	"os"
	"path/filepath"
)

const dbFileName = "suitcase.sqlite"

// Store locates the durable item database. The zero value is not usable;
// construct with a directory (see DefaultDir).
type Store struct {
	Dir string
}

// DefaultDir resolves the data directory: SUITCASE_DIR if set, otherwise
// ~/.suitcase.
func DefaultDir() (string, error) {
	if v := os.Getenv("SUITCASE_DIR"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".suitcase"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, dbFileName)
}
