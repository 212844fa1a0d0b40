package models

import (
	"time"
)

// BuildVersionInfo is the version of a wataki binary
type BuildVersionInfo struct {
	GitVersion string    `json:"GitVersion" yaml:"GitVersion"`
	GitCommit  string    `json:"GitCommit" yaml:"GitCommit"`
	BuildDate  time.Time `json:"BuildDate" yaml:"BuildDate"`
	GOOS       string    `json:"GOOS" yaml:"GOOS"`
	GOARCH     string    `json:"GOARCH" yaml:"GOARCH"`
}
