package starlark

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"go.starlark.net/starlark"
)

// ExecFile executes a Starlark source file and returns its exported globals
// (names not starting with _). print() output goes to logger at debug level.
func ExecFile(path string, src []byte, predeclared starlark.StringDict, logger *slog.Logger) (starlark.StringDict, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	thread := &starlark.Thread{
		Name: "exec:" + filepath.Base(path),
		Print: func(_ *starlark.Thread, msg string) {
			logger.Debug("starlark print", "file", path, "message", msg)
		},
	}

	globals, err := starlark.ExecFile(thread, path, src, predeclared) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if err != nil {
		return nil, &ExecError{File: path, Message: err.Error()}
	}

	exports := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		if len(name) > 0 && name[0] != '_' {
			exports[name] = value
		}
	}
	return exports, nil
}

// ExecError represents an error executing a Starlark file.
type ExecError struct {
	File    string
	Message string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: starlark execution error: %s", e.File, e.Message)
}
