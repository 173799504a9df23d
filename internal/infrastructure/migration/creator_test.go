package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Swarup9437/pm-tool/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"add task notes":   "add_task_notes",
		"Add-Task-Notes":   "add_task_notes",
		"add__task__notes": "add_task_notes",
		"   spaces   ":     "spaces",
		"special!@#$chars": "specialchars",
		"_leading":         "leading",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeName(in), "input %q", in)
	}
}

func TestCreateMigration_Sequential(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "init schema", "tables")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_init_schema.up.sql"), first.UpPath)

	second, err := CreateMigration(dir, "Add task notes", "notes column")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)
	assert.FileExists(t, second.DownPath)

	body, err := os.ReadFile(second.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "notes column")

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init_schema", "000002_add_task_notes"}, names)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations_MissingDir(t *testing.T) {
	names, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := migrationsGlob("*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)
	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		_, err := migrations.FS.Open(down)
		assert.NoError(t, err, "missing %s", down)
	}
}

func migrationsGlob(pattern string) ([]string, error) {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if ok, _ := filepath.Match(pattern, e.Name()); ok {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
