package envconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions recognised by RegisterDir.
var Extensions = []string{".yaml", ".yml", ".star"}

// RegisterDir registers one factory per settings file in dir, named after
// the file without its extension: includes/configs/prod.yaml → "prod".
// A missing directory registers nothing. Files whose names are not plain
// identifiers (dev.local.yaml, 1dev.yaml) are skipped.
func (l *Loader) RegisterDir(dir string, vars map[string]string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("configs directory not found", "dir", dir)
			return nil
		}
		return fmt.Errorf("failed to access configs directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("configs path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to scan configs directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !slices.Contains(Extensions, ext) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		name := strings.TrimSuffix(entry.Name(), ext)
		if err := validateName(name); err != nil {
			l.logger.Debug("skipping settings file", "file", path, "reason", err.Error())
			continue
		}

		var factory Factory
		if ext == ".star" {
			factory = StarlarkFile(path, name, vars, l.logger)
		} else {
			factory = YAMLFile(path)
		}

		if err := l.Register(name, factory); err != nil {
			return &DiscoveryError{File: path, Message: err.Error()}
		}
	}

	return nil
}

// validateName checks that an environment name is a plain identifier.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("environment name cannot be empty")
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return fmt.Errorf("invalid environment name %q", name)
		}
	}
	return nil
}

// DiscoveryError reports a settings file that could not be registered.
type DiscoveryError struct {
	File    string
	Message string
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("configs/%s: %s", filepath.Base(e.File), e.Message)
}
