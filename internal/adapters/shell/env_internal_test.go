package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name     string
		sysEnv   []string
		cmdEnv   []string
		expected []string
	}{
		{
			name:     "System Only",
			sysEnv:   []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
			expected: []string{"HOME=/home/test", "PATH=/bin", "USER=test"},
		},
		{
			name:     "Command Overrides",
			sysEnv:   []string{"USER=test", "LANG=C"},
			cmdEnv:   []string{"LANG=en_US.UTF-8", "FOO=bar"},
			expected: []string{"FOO=bar", "LANG=en_US.UTF-8", "USER=test"},
		},
		{
			name:     "Search Path Prepended",
			sysEnv:   []string{"TEXINPUTS=/usr/share/tex//", "PATH=/bin"},
			cmdEnv:   []string{"TEXINPUTS=/work/latex//", "PATH=/tools"},
			expected: []string{"PATH=/tools" + sep + "/bin", "TEXINPUTS=/work/latex//" + sep + "/usr/share/tex//"},
		},
		{
			name:     "Search Path Without System Value",
			sysEnv:   []string{"USER=test"},
			cmdEnv:   []string{"TEXINPUTS=." + sep + "/work/latex//" + sep},
			expected: []string{"TEXINPUTS=." + sep + "/work/latex//" + sep, "USER=test"},
		},
		{
			name:     "Search Path Default Marker Joined Once",
			sysEnv:   []string{"TEXINPUTS=/usr/share/tex//"},
			cmdEnv:   []string{"TEXINPUTS=." + sep + "/work/latex//" + sep},
			expected: []string{"TEXINPUTS=." + sep + "/work/latex//" + sep + "/usr/share/tex//"},
		},
		{
			name:     "Malformed Entries Ignored",
			sysEnv:   []string{"BROKEN", "USER=test"},
			cmdEnv:   []string{"ALSO_BROKEN"},
			expected: []string{"USER=test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveEnvironment(tt.sysEnv, tt.cmdEnv))
		})
	}
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "faketex")
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700))
	plain := filepath.Join(dir, "notexec")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o600))

	t.Run("Found In PATH", func(t *testing.T) {
		got, err := lookPath("faketex", []string{"PATH=/nonexistent" + string(os.PathListSeparator) + dir})
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	})

	t.Run("Explicit Path", func(t *testing.T) {
		got, err := lookPath(tool, nil)
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	})

	t.Run("Not Executable", func(t *testing.T) {
		_, err := lookPath(plain, nil)
		assert.Error(t, err)
	})

	t.Run("Empty PATH", func(t *testing.T) {
		_, err := lookPath("faketex", []string{"USER=test"})
		assert.Error(t, err)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := lookPath("qworld-missing", []string{"PATH=" + dir})
		assert.Error(t, err)
	})
}

func TestFindExecutable_Directory(t *testing.T) {
	assert.Error(t, findExecutable(t.TempDir()))
}
