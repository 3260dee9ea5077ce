package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/ksyq12/sitegen/internal/config"
	"github.com/ksyq12/sitegen/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Disable color for tests
	color.NoColor = true
}

const testTemplate = "server {{\n    listen {listen};\n    server_name {server_name};\n    root {root};\n}}\n"

const testDeclarations = `[siteA]
listen = 80
server_name = example.com
root = /storage/www/example.com

[blog]
listen = 8080
server_name = blog.example.org
root = /storage/www/blog.example.org
`

// newTestConfig lays out a template, declarations and output directory in a
// temp dir and returns a config pointing at them
func newTestConfig(t *testing.T, declarations string) *config.Config {
	t.Helper()
	base := t.TempDir()

	cfg := config.Default()
	cfg.OutputDir = filepath.Join(base, "conf.d")
	cfg.Template = filepath.Join(base, "template.conf")
	cfg.Declarations = filepath.Join(base, "params.ini")
	cfg.SiteRoot = filepath.Join(base, "www")

	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0755))
	require.NoError(t, os.WriteFile(cfg.Template, []byte(testTemplate), 0644))
	require.NoError(t, os.WriteFile(cfg.Declarations, []byte(declarations), 0644))
	return cfg
}

// newTestCmd returns a command writing to buffers and resets the flag
// variables when the test ends
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	t.Cleanup(func() {
		configPath = ""
		jsonOutput = false
		dryRun = false
		noReload = false
	})
	return cmd, &stdout, &stderr
}

func TestLoadConfig(t *testing.T) {
	t.Run("passes --config to the loader", func(t *testing.T) {
		h := NewTestHelper(t, config.Default())
		newTestCmd(t)
		configPath = "/tmp/sitegen.yaml"

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Same(t, h.GetConfig(), cfg)
		assert.Equal(t, []string{"/tmp/sitegen.yaml"}, h.MockConfig.Paths)
	})

	t.Run("rejects an invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Server = "lighttpd"
		NewTestHelper(t, cfg)

		_, err := loadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server: lighttpd")
	})

	t.Run("returns loader errors", func(t *testing.T) {
		NewTestHelper(t, config.Default())
		loadErr := errors.New("boom")
		deps.ConfigLoader = &MockConfigLoader{LoadErr: loadErr}

		_, err := loadConfig()
		assert.ErrorIs(t, err, loadErr)
	})
}

func TestFindSection(t *testing.T) {
	cfg := newTestConfig(t, testDeclarations)
	rendered, err := pipeline.Prepare(cfg)
	require.NoError(t, err)

	r, ok := findSection(rendered, "blog")
	require.True(t, ok)
	assert.Equal(t, "blog", r.Section.Name)

	_, ok = findSection(rendered, "missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"siteA", "blog"}, sectionNames(rendered))
}

func TestCommandContext(t *testing.T) {
	cmd := &cobra.Command{}
	assert.NotNil(t, commandContext(cmd))
}
