package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rmk/internal/app"
)

// quietProvider builds the real component graph and silences its logger.
func quietProvider(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.SetOutput(io.Discard)
	return c, func() {}, nil
}

func TestRun_ProviderFailure(t *testing.T) {
	var stderr bytes.Buffer
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("wiring exploded")
	}

	code := run(context.Background(), []string{"version"}, &stderr, provider)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "wiring exploded")
}

func TestRun_Version(t *testing.T) {
	t.Chdir(t.TempDir())

	code := run(context.Background(), []string{"version"}, io.Discard, quietProvider)

	assert.Equal(t, 0, code)
}

func TestRun_MakeSuccess(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	marker := filepath.Join(dir, "marker")
	content := fmt.Sprintf("$all:\n\ttouch %s\n", marker)
	require.NoError(t, os.WriteFile("mkfile", []byte(content), 0o600))

	code := run(context.Background(), []string{"make"}, io.Discard, quietProvider)

	assert.Equal(t, 0, code)
	assert.FileExists(t, marker)
}

func TestRun_BuildFailureExitsTwo(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, os.WriteFile("mkfile", []byte("$all:\n\texit 1\n"), 0o600))

	code := run(context.Background(), []string{"make"}, io.Discard, quietProvider)

	assert.Equal(t, 2, code)
}

func TestRun_UsageErrorExitsOne(t *testing.T) {
	t.Chdir(t.TempDir())

	code := run(context.Background(), []string{"no-such-command"}, io.Discard, quietProvider)

	assert.Equal(t, 1, code)
}
