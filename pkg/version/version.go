package version

import (
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wataki/wataki-go/pkg/models"
)

const DevelopmentGitVersion = "v0.0.0-xxxxxxx"

// These are set with -ldflags at build time, e.g.
//
//	-X github.com/wataki/wataki-go/pkg/version.GITVERSION=v1.2.3
var (
	GITVERSION = DevelopmentGitVersion
	GITCOMMIT  = ""
	BUILDDATE  = ""
)

// Get returns the version of the running binary.
func Get() *models.BuildVersionInfo {
	info := &models.BuildVersionInfo{
		GitVersion: GITVERSION,
		GitCommit:  GITCOMMIT,
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}
	if BUILDDATE != "" {
		buildDate, err := time.Parse(time.RFC3339, BUILDDATE)
		if err != nil {
			log.Warn().Str("BUILDDATE", BUILDDATE).Msg("could not parse build date")
		}
		info.BuildDate = buildDate
	}
	return info
}

// UserAgent is sent with every control-plane request.
func UserAgent() string {
	return fmt.Sprintf("wataki-go/%s (%s/%s)", GITVERSION, runtime.GOOS, runtime.GOARCH)
}

// TracerName names the tracer used for client spans.
func TracerName() string {
	return "github.com/wataki/wataki-go"
}
