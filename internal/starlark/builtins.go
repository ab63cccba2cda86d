package starlark

import (
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Predeclared returns the globals visible to a settings file:
//
//	env     the environment name being loaded ("dev", "prod", ...)
//	vars    the project variables as a frozen dict
//	struct  starlarkstruct constructor
func Predeclared(env string, vars map[string]string) starlark.StringDict {
	return starlark.StringDict{
		"env":    starlark.String(env),
		"vars":   VarsDict(vars),
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
}
