package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhan647/task-planner/pkg/storage"
)

func useDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := dataDir
	dataDir = dir
	t.Cleanup(func() { dataDir = prev })
	return dir
}

// A corrupt task file must not keep the app from starting.
func TestOpenStoresWithCorruptFile(t *testing.T) {
	dir := useDataDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.FileName), []byte("{{{not yaml"), 0644))

	tasks, adapter, err := openStores()
	require.NoError(t, err)
	require.NotNil(t, adapter)
	assert.Equal(t, 0, tasks.Len())
}

func TestOpenStoresWithMissingFile(t *testing.T) {
	useDataDir(t)

	tasks, adapter, err := openStores()
	require.NoError(t, err)
	require.NotNil(t, adapter)
	assert.Equal(t, 0, tasks.Len())
}

func TestResolveDataDirPrecedence(t *testing.T) {
	dir := useDataDir(t)
	assert.Equal(t, dir, resolveDataDir())

	// The flag wins over the environment.
	t.Setenv("TASK_PLANNER_DIR", "/elsewhere")
	assert.Equal(t, dir, resolveDataDir())

	dataDir = ""
	assert.Equal(t, "/elsewhere", resolveDataDir())
}
