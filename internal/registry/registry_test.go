package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlinc/internal/testutil"
	"github.com/leapstack-labs/sqlinc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	r := Default(WithLogger(testutil.NewTestLogger(t)))

	tests := []struct {
		name      string
		source    string
		table     string
		want      string
		wantErr   bool
		errSubstr string
	}{
		{
			name:   "appsflyer installs",
			source: "appsflyer",
			table:  "installs",
			want:   "analytics-data-mart.adm_appsflyer_reporting.installs",
		},
		{
			name:   "appsflyer events",
			source: "appsflyer",
			table:  "events",
			want:   "analytics-data-mart.adm_appsflyer_reporting.events",
		},
		{
			name:   "logical and physical names differ",
			source: "ironsource",
			table:  "impressions",
			want:   "analytics-data-mart.adm_ironsource_raw.impression",
		},
		{
			name:      "unknown source",
			source:    "adjust",
			table:     "installs",
			wantErr:   true,
			errSubstr: `source "adjust"`,
		},
		{
			name:      "unknown table",
			source:    "appsflyer",
			table:     "clicks",
			wantErr:   true,
			errSubstr: `table "clicks"`,
		},
		{
			name:      "physical name is not a logical key",
			source:    "ironsource",
			table:     "impression",
			wantErr:   true,
			errSubstr: `table "impression"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(r, tt.source, tt.table)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, core.ErrMissingKey)
				assert.Contains(t, err.Error(), tt.errSubstr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Resolve_KeyError(t *testing.T) {
	r := Default()

	_, err := r.Resolve("appsflyer", "clicks")
	var keyErr *KeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, "appsflyer", keyErr.Source)
	assert.Equal(t, "clicks", keyErr.Table)

	_, err = r.Resolve("missing", "installs")
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, "missing", keyErr.Source)
	assert.Empty(t, keyErr.Table)
}

func TestRegistry_AllPairsResolve(t *testing.T) {
	r := Default()

	refs := r.All()
	require.Len(t, refs, 3)

	for _, ref := range refs {
		got, err := r.Resolve(ref.Source, ref.Table)
		require.NoError(t, err)
		assert.Equal(t, ref.FQN, got)
		assert.NotContains(t, got, " ")
	}

	assert.Equal(t, TableRef{Source: "appsflyer", Table: "events", FQN: "analytics-data-mart.adm_appsflyer_reporting.events"}, refs[0])
	assert.Equal(t, "ironsource", refs[2].Source)
}

func TestRegistry_AllEmpty(t *testing.T) {
	r, err := New(Definition{GCP: GCPConfig{Project: ProjectConfig{ID: "p"}}})
	require.NoError(t, err)

	refs := r.All()
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}

func TestRegistry_Accessors(t *testing.T) {
	r := Default()

	assert.Equal(t, DefaultProject, r.Project())
	assert.Equal(t, []string{"appsflyer", "ironsource"}, r.SourceNames())

	tables, err := r.TableNames("appsflyer")
	require.NoError(t, err)
	assert.Equal(t, []string{"events", "installs"}, tables)

	_, err = r.TableNames("nope")
	assert.ErrorIs(t, err, core.ErrMissingKey)

	src, ok := r.Source("ironsource")
	require.True(t, ok)
	assert.Equal(t, "adm_ironsource_raw", src.Dataset)

	_, ok = r.Source("nope")
	assert.False(t, ok)
}

func TestNew_CopiesDefinition(t *testing.T) {
	def := DefaultDefinition()
	r, err := New(def)
	require.NoError(t, err)

	def.GCP.Project.ID = "changed"
	def.Sources["appsflyer"].Tables["installs"] = "mutated"
	delete(def.Sources, "ironsource")

	got, err := r.Resolve("appsflyer", "installs")
	require.NoError(t, err)
	assert.Equal(t, "analytics-data-mart.adm_appsflyer_reporting.installs", got)

	_, err = r.Resolve("ironsource", "impressions")
	assert.NoError(t, err)

	src, _ := r.Source("appsflyer")
	src.Tables["installs"] = "mutated"
	got, _ = r.Resolve("appsflyer", "installs")
	assert.Equal(t, "analytics-data-mart.adm_appsflyer_reporting.installs", got)
}

func TestNew_PresenceChecks(t *testing.T) {
	tests := []struct {
		name      string
		def       Definition
		errSubstr string
	}{
		{
			name:      "missing project",
			def:       Definition{Sources: map[string]Source{}},
			errSubstr: "gcp.project.id",
		},
		{
			name: "missing dataset",
			def: Definition{
				GCP:     GCPConfig{Project: ProjectConfig{ID: "p"}},
				Sources: map[string]Source{"s": {Tables: map[string]string{"a": "a"}}},
			},
			errSubstr: "sources.s.dataset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.def)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidDefinition)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestNew_SourceWithoutTables(t *testing.T) {
	r, err := New(Definition{
		GCP:     GCPConfig{Project: ProjectConfig{ID: "p"}},
		Sources: map[string]Source{"empty": {Dataset: "d"}},
	})
	require.NoError(t, err)

	tables, err := r.TableNames("empty")
	require.NoError(t, err)
	assert.Empty(t, tables)

	_, err = r.Resolve("empty", "anything")
	assert.ErrorIs(t, err, core.ErrMissingKey)
}

func TestFromSettings(t *testing.T) {
	settings := map[string]any{
		"gcp": map[string]any{
			"project": map[string]any{"id": "analytics-data-mart-prod"},
		},
		"sources": map[string]any{
			"appsflyer": map[string]any{
				"dataset": "adm_appsflyer_reporting",
				"tables":  map[string]any{"installs": "installs_v2"},
			},
		},
		"schedule": "daily",
	}

	r, err := FromSettings(settings)
	require.NoError(t, err)

	got, err := r.Resolve("appsflyer", "installs")
	require.NoError(t, err)
	assert.Equal(t, "analytics-data-mart-prod.adm_appsflyer_reporting.installs_v2", got)
}

func TestFromSettings_MissingProject(t *testing.T) {
	_, err := FromSettings(map[string]any{"sources": map[string]any{}})
	assert.ErrorIs(t, err, core.ErrInvalidDefinition)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.yaml")
	content := `gcp:
  project:
    id: analytics-data-mart
sources:
  appsflyer:
    dataset: adm_appsflyer_reporting
    tables:
      installs: installs
      events.raw: events_raw
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := LoadFile(path)
	require.NoError(t, err)

	got, err := r.Resolve("appsflyer", "events.raw")
	require.NoError(t, err)
	assert.Equal(t, "analytics-data-mart.adm_appsflyer_reporting.events_raw", got)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}
