package reconcile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ksyq12/sitegen/internal/declaration"
	sgerrors "github.com/ksyq12/sitegen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDirs struct {
	output string
	www    string
}

func setupDirs(t *testing.T) testDirs {
	t.Helper()
	base := t.TempDir()
	dirs := testDirs{
		output: filepath.Join(base, "conf.d"),
		www:    filepath.Join(base, "www"),
	}
	require.NoError(t, os.MkdirAll(dirs.output, 0755))
	return dirs
}

func site(name, serverName string) declaration.Section {
	return declaration.Section{Name: name, Fields: []declaration.Field{
		{Key: "listen", Value: "80"},
		{Key: "server_name", Value: serverName},
		{Key: "root", Value: "/storage/www/" + serverName},
	}}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/nginx/conf.d", "siteA.conf"), ConfigPath("/etc/nginx/conf.d", "siteA"))
	assert.Equal(t, filepath.Join("/storage/www", "example.com"), SiteDir("/storage/www", "example.com"))
}

func TestApply_Create(t *testing.T) {
	dirs := setupDirs(t)
	r := New(dirs.output, dirs.www)

	out, err := r.Apply(site("siteA", "example.com"), "listen 80;")
	require.NoError(t, err)

	assert.Equal(t, ActionCreated, out.Action)
	assert.True(t, out.Action.Changed())
	assert.Equal(t, filepath.Join(dirs.output, "siteA.conf"), out.ConfigPath)
	assert.Equal(t, filepath.Join(dirs.www, "example.com"), out.SiteDir)

	content, err := os.ReadFile(out.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "listen 80;", string(content))

	info, err := os.Stat(out.SiteDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	if runtime.GOOS != "windows" {
		cfgInfo, err := os.Stat(out.ConfigPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), cfgInfo.Mode().Perm())
	}

	// no temp files left behind
	entries, err := os.ReadDir(dirs.output)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "siteA.conf", entries[0].Name())
}

func TestApply_Identical(t *testing.T) {
	dirs := setupDirs(t)
	r := New(dirs.output, dirs.www)
	path := filepath.Join(dirs.output, "siteA.conf")
	require.NoError(t, os.WriteFile(path, []byte("listen 80;"), 0644))

	out, err := r.Apply(site("siteA", "example.com"), "listen 80;")
	require.NoError(t, err)
	assert.Equal(t, ActionUnchanged, out.Action)
	assert.False(t, out.Action.Changed())

	// identical config short-circuits before the site directory
	_, err = os.Stat(filepath.Join(dirs.www, "example.com"))
	assert.True(t, os.IsNotExist(err), "site directory must not be created for an unchanged config")
}

func TestApply_Update(t *testing.T) {
	dirs := setupDirs(t)
	r := New(dirs.output, dirs.www)
	path := filepath.Join(dirs.output, "siteA.conf")
	require.NoError(t, os.WriteFile(path, []byte("listen 8080;\nold trailing content that is longer"), 0640))

	out, err := r.Apply(site("siteA", "example.com"), "listen 80;")
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, out.Action)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "listen 80;", string(content), "write must fully replace the old content")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0640), info.Mode().Perm(), "existing mode is kept")
	}
}

func TestApply_ExistingSiteDir(t *testing.T) {
	dirs := setupDirs(t)
	r := New(dirs.output, dirs.www)
	siteDir := filepath.Join(dirs.www, "example.com")
	require.NoError(t, os.MkdirAll(siteDir, 0755))
	marker := filepath.Join(siteDir, "index.html")
	require.NoError(t, os.WriteFile(marker, []byte("hi"), 0644))

	out, err := r.Apply(site("siteA", "example.com"), "listen 80;")
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, out.Action)

	content, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content), "site directory contents are not touched")
}

func TestApply_ByteExactComparison(t *testing.T) {
	dirs := setupDirs(t)
	r := New(dirs.output, dirs.www)
	path := filepath.Join(dirs.output, "siteA.conf")
	require.NoError(t, os.WriteFile(path, []byte("listen 80;\n"), 0644))

	out, err := r.Apply(site("siteA", "example.com"), "listen 80;")
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, out.Action, "a trailing newline is a difference")
}

func TestApply_WriteErrors(t *testing.T) {
	t.Run("output directory missing", func(t *testing.T) {
		base := t.TempDir()
		r := New(filepath.Join(base, "gone"), filepath.Join(base, "www"))

		_, err := r.Apply(site("siteA", "example.com"), "x")
		require.Error(t, err)
		assert.True(t, sgerrors.Is(err, sgerrors.ErrWrite))
		assert.Contains(t, err.Error(), "section [siteA]: cannot write config")
	})

	t.Run("site root is a file", func(t *testing.T) {
		dirs := setupDirs(t)
		require.NoError(t, os.WriteFile(dirs.www, []byte("not a dir"), 0644))
		r := New(dirs.output, dirs.www)

		_, err := r.Apply(site("siteA", "example.com"), "x")
		require.Error(t, err)
		assert.True(t, sgerrors.Is(err, sgerrors.ErrWrite))
		assert.Contains(t, err.Error(), "cannot create site directory")

		// the config was written before the directory failed
		_, statErr := os.Stat(filepath.Join(dirs.output, "siteA.conf"))
		assert.NoError(t, statErr)
	})

	t.Run("config path is a directory", func(t *testing.T) {
		dirs := setupDirs(t)
		require.NoError(t, os.MkdirAll(filepath.Join(dirs.output, "siteA.conf"), 0755))
		r := New(dirs.output, dirs.www)

		_, err := r.Apply(site("siteA", "example.com"), "x")
		require.Error(t, err)
		assert.True(t, sgerrors.Is(err, sgerrors.ErrWrite))
	})
}

func TestPlan_DoesNotWrite(t *testing.T) {
	dirs := setupDirs(t)
	r := New(dirs.output, dirs.www)

	out, err := r.Plan(site("siteA", "example.com"), "listen 80;")
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, out.Action)

	_, err = os.Stat(out.ConfigPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(out.SiteDir)
	assert.True(t, os.IsNotExist(err))
}
