package cli

import (
	"bytes"
	"testing"

	"github.com/leapstack-labs/sqlinc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func TestRoot_FQN(t *testing.T) {
	dir := t.TempDir()

	out, _, err := run(t, "--project-dir", dir, "fqn", "appsflyer", "installs")
	require.NoError(t, err)
	assert.Equal(t, "analytics-data-mart.adm_appsflyer_reporting.installs\n", out)
}

func TestRoot_ConfigFileAndEnvFlag(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"sqlinc.yaml": `configs_dir: settings
vars:
  region: eu
gcp:
  project:
    id: adm-inline
sources:
  appsflyer:
    dataset: af_inline
    tables:
      installs: installs
`,
		"settings/prod.star": `environment = {
    "gcp": {"project": {"id": "adm-" + vars["region"]}},
    "sources": {"appsflyer": {"dataset": "af_" + env, "tables": {"installs": "installs"}}},
}
`,
		"settings/dev.yaml": "environment:\n  schedule: hourly\n",
	})

	// dev has no sources, so the inline registry from sqlinc.yaml applies.
	out, _, err := run(t, "--project-dir", dir, "fqn", "appsflyer", "installs")
	require.NoError(t, err)
	assert.Equal(t, "adm-inline.af_inline.installs\n", out)

	out, _, err = run(t, "--project-dir", dir, "--env", "prod", "fqn", "appsflyer", "installs")
	require.NoError(t, err)
	assert.Equal(t, "adm-eu.af_prod.installs\n", out)

	out, _, err = run(t, "--project-dir", dir, "-e", "prod", "--var", "region=us", "fqn", "appsflyer", "installs")
	require.NoError(t, err)
	assert.Equal(t, "adm-us.af_prod.installs\n", out)
}

func TestRoot_EnvVarSelectsEnvironment(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"includes/configs/dev.yaml":  "environment:\n  name: dev\n",
		"includes/configs/prod.yaml": "environment:\n  name: prod\n",
	})
	t.Setenv("SQLINC_ENV", "prod")

	out, _, err := run(t, "--project-dir", dir, "-o", "json", "env", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"selected": "prod"`)
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()

	out, errOut, err := run(t, "--project-dir", dir, "-v", "case", "nullable-id", "user_id")
	require.NoError(t, err)
	assert.Contains(t, out, "AS user_id")
	assert.Contains(t, errOut, "DEBUG")
	assert.Contains(t, errOut, "selected environment")
}

func TestRoot_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, "--project-dir", dir, "-o", "xml", "sources")
	assert.ErrorContains(t, err, "invalid output mode")

	_, _, err = run(t, "--project-dir", dir, "--log-level", "loud", "sources")
	assert.ErrorContains(t, err, "invalid log level")

	_, _, err = run(t, "--project-dir", dir, "fqn", "nope", "installs")
	assert.ErrorContains(t, err, `source "nope" not found`)
}

func TestRoot_Version(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlinc v"+Version)
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlinc")

	_, _, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"includes/configs/prod.yaml": "environment: {}\n",
		"sqlinc.yaml":                "sources:\n  x:\n    dataset: d\n",
	})

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "ok", args: []string{"version"}, want: ExitOK},
		{name: "usage", args: []string{"fqn"}, want: ExitError},
		{name: "missing key", args: []string{"--project-dir", t.TempDir(), "fqn", "nope", "t"}, want: ExitMissingKey},
		{name: "missing environment", args: []string{"--project-dir", dir, "fqn", "x", "t"}, want: ExitMissingEnvironment},
		{name: "invalid definition", args: []string{"--project-dir", dir, "--env", "prod", "fqn", "x", "t"}, want: ExitInvalidDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.Equal(t, tt.want, ExitCode(err))
		})
	}
}
