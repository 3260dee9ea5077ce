package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SiteError
		expected string
	}{
		{
			name:     "message only",
			err:      &SiteError{Code: ErrCodeConfig, Message: "invalid server"},
			expected: "invalid server",
		},
		{
			name:     "with section",
			err:      &SiteError{Code: ErrCodeValidation, Message: `missing required key "root"`, Section: "siteA"},
			expected: `section [siteA]: missing required key "root"`,
		},
		{
			name:     "with path and line",
			err:      &SiteError{Code: ErrCodeParse, Message: "duplicate section [a]", Path: "params.ini", Line: 7},
			expected: "params.ini:7: duplicate section [a]",
		},
		{
			name: "with path, section and underlying error",
			err: &SiteError{
				Code:    ErrCodeWrite,
				Message: "cannot write config",
				Section: "siteB",
				Path:    "/etc/nginx/conf.d/siteB.conf",
				Err:     fmt.Errorf("permission denied"),
			},
			expected: "/etc/nginx/conf.d/siteB.conf: section [siteB]: cannot write config: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestSiteError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	err := Write("s", "/tmp/x", "cannot write", underlying)

	assert.True(t, errors.Is(err, underlying))
	assert.Nil(t, (&SiteError{Code: ErrCodeParse}).Unwrap())
}

func TestSiteError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{"code sentinel", Parse("p.ini", 3, "bad line"), ErrParse, true},
		{"different code", Parse("p.ini", 3, "bad line"), ErrWrite, false},
		{"missing key reason", MissingKey("a", "root"), ErrMissingKey, true},
		{"missing key is not empty value", MissingKey("a", "root"), ErrEmptyValue, false},
		{"empty value reason", EmptyValue("a", "server_name"), ErrEmptyValue, true},
		{"empty value is validation", EmptyValue("a", "server_name"), ErrValidation, true},
		{"unsafe name reason", UnsafeName("a", "server_name", ".."), ErrUnsafeName, true},
		{"plain error target", Render("a", "x"), fmt.Errorf("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.Is(tt.err, tt.target))
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Run("MissingKey", func(t *testing.T) {
		var siteErr *SiteError
		require.True(t, errors.As(MissingKey("siteA", "root"), &siteErr))
		assert.Equal(t, ErrCodeValidation, siteErr.Code)
		assert.Equal(t, "siteA", siteErr.Section)
		assert.Equal(t, "root", siteErr.Key)
		assert.Contains(t, siteErr.Error(), `missing required key "root"`)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		err := EmptyValue("siteA", "server_name")
		assert.EqualError(t, err, `section [siteA]: empty value for key "server_name"`)
	})

	t.Run("Precondition", func(t *testing.T) {
		err := Precondition("/etc/nginx/conf.d", "directory does not exist")
		assert.True(t, errors.Is(err, ErrPrecondition))
		assert.EqualError(t, err, "/etc/nginx/conf.d: directory does not exist")
	})

	t.Run("ParseRead", func(t *testing.T) {
		underlying := fmt.Errorf("permission denied")
		err := ParseRead("params.ini", underlying)
		assert.True(t, errors.Is(err, ErrParse))
		assert.True(t, errors.Is(err, underlying))
	})

	t.Run("Config", func(t *testing.T) {
		err := Config("/etc/sitegen/config.yaml", "cannot parse config", fmt.Errorf("yaml: line 2"))
		assert.True(t, errors.Is(err, ErrConfig))
		assert.Contains(t, err.Error(), "yaml: line 2")
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  *SiteError
		code ErrorCode
	}{
		{"ErrPrecondition", ErrPrecondition, ErrCodePrecondition},
		{"ErrConfig", ErrConfig, ErrCodeConfig},
		{"ErrParse", ErrParse, ErrCodeParse},
		{"ErrValidation", ErrValidation, ErrCodeValidation},
		{"ErrRender", ErrRender, ErrCodeRender},
		{"ErrWrite", ErrWrite, ErrCodeWrite},
		{"ErrReload", ErrReload, ErrCodeReload},
	}

	for _, tt := range sentinels {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestErrorChain(t *testing.T) {
	root := fmt.Errorf("no space left on device")
	wrapped := fmt.Errorf("apply siteA: %w", Write("siteA", "/x/siteA.conf", "cannot write config", root))

	assert.True(t, errors.Is(wrapped, root))
	assert.True(t, errors.Is(wrapped, ErrWrite))

	var siteErr *SiteError
	require.True(t, errors.As(wrapped, &siteErr))
	assert.Equal(t, "siteA", siteErr.Section)
}
