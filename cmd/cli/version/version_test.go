//go:build unit || !integration

package version

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wataki/wataki-go/cmd/util/output"
	"github.com/wataki/wataki-go/pkg/models"
)

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewCmd()
	cmd.SetOut(&buf)

	oV := NewVersionOptions()
	oV.OutputOpts.Format = output.JSONFormat
	require.NoError(t, oV.Run(cmd))

	var info models.BuildVersionInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, runtime.GOOS, info.GOOS)
	assert.NotEmpty(t, info.GitVersion)
}
