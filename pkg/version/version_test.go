//go:build unit || !integration

package version

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	oldVersion, oldDate := GITVERSION, BUILDDATE
	t.Cleanup(func() { GITVERSION, BUILDDATE = oldVersion, oldDate })

	GITVERSION = "v1.4.0"
	BUILDDATE = "2026-03-01T10:00:00Z"

	info := Get()
	require.Equal(t, "v1.4.0", info.GitVersion)
	require.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), info.BuildDate)
	require.Equal(t, runtime.GOOS, info.GOOS)
	require.Contains(t, UserAgent(), "wataki-go/v1.4.0")
}

func TestGetDevelopmentBuild(t *testing.T) {
	info := Get()
	require.Equal(t, DevelopmentGitVersion, info.GitVersion)
	require.True(t, info.BuildDate.IsZero())
}
