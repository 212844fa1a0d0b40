//go:build unit || !integration

package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wataki/wataki-go/pkg/config"
	"github.com/wataki/wataki-go/pkg/models"
)

type RootSuite struct {
	suite.Suite
	server *httptest.Server
	dir    string

	mu   sync.Mutex
	keys []string
}

func TestRootSuite(t *testing.T) {
	suite.Run(t, new(RootSuite))
}

func (s *RootSuite) SetupTest() {
	s.keys = nil
	s.dir = s.T().TempDir()
	s.T().Setenv(config.DirEnvVar, s.dir)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/instances", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.keys = append(s.keys, r.Header.Get("X-API-Key"))
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.InstanceList{Data: []models.Instance{
			{ID: "inst-1", Name: "support", Status: models.InstanceStatus{State: models.InstanceStateConnected}},
		}})
	})
	s.server = httptest.NewServer(mux)
}

func (s *RootSuite) TearDownTest() {
	s.server.Close()
	config.Reset()
}

func (s *RootSuite) apiKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

func (s *RootSuite) execute(args ...string) string {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	s.Require().NoError(cmd.Execute())
	return out.String()
}

func (s *RootSuite) TestFlagsOverrideConfig() {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "config.yaml"),
		[]byte("api:\n  url: http://127.0.0.1:1\n  key: from-file\n"), 0o600))

	out := s.execute("instance", "list", "--api-url", s.server.URL, "--api-key", "from-flag", "--output", "json")

	var instances []models.Instance
	s.Require().NoError(json.Unmarshal([]byte(out), &instances))
	s.Require().Len(instances, 1)
	s.Equal("inst-1", instances[0].ID)
	s.Equal([]string{"from-flag"}, s.apiKeys())
}

func (s *RootSuite) TestConfigFileProvidesKey() {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "config.yaml"),
		[]byte("api:\n  key: from-file\n"), 0o600))

	s.execute("instance", "list", "--api-url", s.server.URL, "--output", "csv")
	s.Equal([]string{"from-file"}, s.apiKeys())
}

func (s *RootSuite) TestConfigSet() {
	out := s.execute("config", "set", "instance.id", "inst-9")
	s.Contains(out, filepath.Join(s.dir, "config.yaml"))

	cfg, err := config.Load(s.dir, config.WithEnvFile(""))
	s.Require().NoError(err)
	s.Equal("inst-9", cfg.Instance.ID)
}
