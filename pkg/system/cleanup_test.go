//go:build unit || !integration

package system

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/wataki/wataki-go/pkg/logger"
)

type SystemCleanupSuite struct {
	suite.Suite
}

func TestSystemCleanupSuite(t *testing.T) {
	suite.Run(t, new(SystemCleanupSuite))
}

func (suite *SystemCleanupSuite) SetupTest() {
	logger.ConfigureTestLogging(suite.T())
}

func (suite *SystemCleanupSuite) TestCleanupManager() {
	var calls atomic.Int32

	cm := NewCleanupManager()
	cm.RegisterCallback(func() error {
		calls.Add(1)
		return nil
	})
	cm.RegisterCallback(func() error {
		calls.Add(1)
		return errors.New("flush failed")
	})

	cm.Cleanup(context.Background())
	require.Equal(suite.T(), int32(2), calls.Load(), "cleanup handler failed to run registered functions")

	cm.Cleanup(context.Background())
	require.Equal(suite.T(), int32(2), calls.Load(), "callbacks must only run once")

	cm.RegisterCallback(func() error {
		calls.Add(1)
		return nil
	})
	require.Equal(suite.T(), int32(2), calls.Load())
}

func (suite *SystemCleanupSuite) TestCleanupGivesUp() {
	release := make(chan struct{})
	defer close(release)

	cm := NewCleanupManager()
	cm.RegisterCallback(func() error {
		<-release
		return nil
	})

	start := time.Now()
	cm.CleanupWithTimeout(20 * time.Millisecond)
	require.Less(suite.T(), time.Since(start), time.Second)
}
