package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestVarsDict(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantStr string
	}{
		{name: "sorted keys", input: map[string]string{"b": "2", "a": "1"}, wantStr: `{"a": "1", "b": "2"}`},
		{name: "empty", input: map[string]string{}, wantStr: "{}"},
		{name: "nil", input: nil, wantStr: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VarsDict(tt.input)
			assert.Equal(t, tt.wantStr, got.String())
			assert.Error(t, got.SetKey(starlark.String("x"), starlark.String("y")), "dict should be frozen")
		})
	}
}

func TestToGo(t *testing.T) {
	dict := starlark.NewDict(2)
	require.NoError(t, dict.SetKey(starlark.String("name"), starlark.String("dev")))
	require.NoError(t, dict.SetKey(starlark.String("tags"), starlark.Tuple{starlark.String("a"), starlark.MakeInt(1)}))

	got, err := ToGo(dict)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "dev", "tags": []any{"a", int64(1)}}, got)

	_, err = ToGo(starlark.NewBuiltin("f", nil))
	assert.Error(t, err)

	badKey := starlark.NewDict(1)
	require.NoError(t, badKey.SetKey(starlark.MakeInt(1), starlark.String("x")))
	_, err = ToGo(badKey)
	assert.ErrorContains(t, err, "dict key must be string")
}

func TestExecFile(t *testing.T) {
	src := `
project = "analytics-data-mart-" + env
print("loading", env)
environment = {
    "gcp": struct(project = struct(id = project)),
    "schedule": vars.get("schedule", "hourly"),
}
_hidden = 1
`
	globals, err := ExecFile("prod.star", []byte(src), Predeclared("prod", map[string]string{"schedule": "daily"}), nil)
	require.NoError(t, err)

	assert.Contains(t, globals, "environment")
	assert.Contains(t, globals, "project")
	assert.NotContains(t, globals, "_hidden")

	env, err := ToGo(globals["environment"])
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"gcp":      map[string]any{"project": map[string]any{"id": "analytics-data-mart-prod"}},
		"schedule": "daily",
	}, env)
}

func TestExecFile_Error(t *testing.T) {
	_, err := ExecFile("bad.star", []byte("environment = undefined_name"), Predeclared("dev", nil), nil)
	require.Error(t, err)

	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "bad.star", execErr.File)
	assert.Contains(t, err.Error(), "undefined_name")
}

func TestPredeclared_VarsFrozen(t *testing.T) {
	_, err := ExecFile("mutate.star", []byte(`vars["env"] = "prod"`), Predeclared("dev", map[string]string{"env": "dev"}), nil)
	assert.Error(t, err)
}
