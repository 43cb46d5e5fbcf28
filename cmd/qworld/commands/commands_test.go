package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/qworld/cmd/qworld/commands"
	"go.trai.ch/qworld/internal/app"
	"go.trai.ch/qworld/internal/build"
)

type mockApp struct {
	buildFunc func(ctx context.Context, paths []string, opts app.BuildOptions) error
	cleanFunc func(ctx context.Context, paths []string, opts app.CleanOptions) error

	jsonOutput bool
	verbose    bool
}

func (m *mockApp) Build(ctx context.Context, paths []string, opts app.BuildOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, paths, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, paths []string, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, paths, opts)
	}
	return nil
}

func (m *mockApp) ConfigureLogging(jsonOutput, verbose bool) {
	m.jsonOutput = jsonOutput
	m.verbose = verbose
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.BuildOptions
		var capturedPaths []string
		called := false

		mock := &mockApp{
			buildFunc: func(_ context.Context, paths []string, opts app.BuildOptions) error {
				capturedOpts = opts
				capturedPaths = paths
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"build", "docs/intro.md", "guides",
			"--out", "public",
			"--config", "site/qworld.yaml",
			"--strict",
			"--watch",
			"--output-mode", "quiet",
			"--metrics-textfile", "qworld.prom",
			"-j", "3",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, []string{"docs/intro.md", "guides"}, capturedPaths)
		assert.Equal(t, app.BuildOptions{
			ConfigPath:      "site/qworld.yaml",
			OutDir:          "public",
			Concurrency:     3,
			OutputMode:      "quiet",
			MetricsTextfile: "qworld.prom",
			Strict:          true,
			Watch:           true,
		}, capturedOpts)
	})

	t.Run("ci selects linear output", func(t *testing.T) {
		var capturedOpts app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ []string, opts app.BuildOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "--ci"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "linear", capturedOpts.OutputMode)
	})

	t.Run("defaults", func(t *testing.T) {
		var capturedOpts app.BuildOptions
		var capturedPaths []string
		mock := &mockApp{
			buildFunc: func(_ context.Context, paths []string, opts app.BuildOptions) error {
				capturedOpts = opts
				capturedPaths = paths
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, capturedPaths)
		assert.Equal(t, app.BuildOptions{OutputMode: "auto"}, capturedOpts)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ []string, _ app.BuildOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_LoggingFlags(t *testing.T) {
	mock := &mockApp{}

	cli := commands.New(mock)
	cli.SetArgs([]string{"--json", "build", "--verbose"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, mock.jsonOutput)
	assert.True(t, mock.verbose)
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "no flags", args: []string{"clean"}, want: app.CleanOptions{}},
		{name: "scratch", args: []string{"clean", "--scratch"}, want: app.CleanOptions{Scratch: true}},
		{name: "artifacts", args: []string{"clean", "--artifacts"}, want: app.CleanOptions{Artifacts: true}},
		{
			name: "unused with config",
			args: []string{"clean", "--unused", "--config", "qworld.yaml"},
			want: app.CleanOptions{ConfigPath: "qworld.yaml", Unused: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(_ context.Context, _ []string, opts app.CleanOptions) error {
					captured = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, captured)
		})
	}

	t.Run("artifacts and unused are exclusive", func(t *testing.T) {
		mock := &mockApp{
			cleanFunc: func(_ context.Context, _ []string, _ app.CleanOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"clean", "--artifacts", "--unused"})

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "qworld version "+build.Version)
}
