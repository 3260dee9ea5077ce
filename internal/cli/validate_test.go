package cli

import (
	"encoding/json"
	"os"
	"testing"

	sgerrors "github.com/ksyq12/sitegen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunValidate(t *testing.T) {
	t.Run("valid declarations", func(t *testing.T) {
		h := NewTestHelper(t, newTestConfig(t, testDeclarations))
		cmd, stdout, _ := newTestCmd(t)

		require.NoError(t, runValidate(cmd, nil))

		out := stdout.String()
		assert.Contains(t, out, "SECTION  LISTEN  SERVER_NAME")
		assert.Contains(t, out, "blog.example.org")
		assert.Contains(t, out, "✓ 2 sections valid")

		entries, err := os.ReadDir(h.GetConfig().OutputDir)
		require.NoError(t, err)
		assert.Empty(t, entries, "validate never writes")
		assert.Equal(t, 0, h.MockDriver.TestCalls)
	})

	t.Run("json", func(t *testing.T) {
		NewTestHelper(t, newTestConfig(t, testDeclarations))
		cmd, stdout, _ := newTestCmd(t)
		jsonOutput = true

		require.NoError(t, runValidate(cmd, nil))

		var summaries []SectionSummary
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &summaries))
		require.Len(t, summaries, 2)
		assert.Equal(t, "siteA", summaries[0].Section)
		assert.Equal(t, "80", summaries[0].Listen)
		assert.Equal(t, "example.com", summaries[0].ServerName)
		assert.Equal(t, "/storage/www/example.com", summaries[0].Root)
	})

	t.Run("empty declarations", func(t *testing.T) {
		NewTestHelper(t, newTestConfig(t, "# nothing yet\n"))
		cmd, stdout, _ := newTestCmd(t)

		require.NoError(t, runValidate(cmd, nil))
		assert.Contains(t, stdout.String(), "! No sections declared")
	})

	t.Run("empty value", func(t *testing.T) {
		decl := "[siteA]\nlisten = 80\nserver_name = \t \nroot = /srv\n"
		NewTestHelper(t, newTestConfig(t, decl))
		cmd, _, _ := newTestCmd(t)

		err := runValidate(cmd, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, sgerrors.ErrEmptyValue)
		assert.Contains(t, err.Error(), "section [siteA]")
	})

	t.Run("missing template", func(t *testing.T) {
		h := NewTestHelper(t, newTestConfig(t, testDeclarations))
		require.NoError(t, os.Remove(h.GetConfig().Template))
		cmd, _, _ := newTestCmd(t)

		err := runValidate(cmd, nil)
		assert.ErrorIs(t, err, sgerrors.ErrPrecondition)
	})
}
