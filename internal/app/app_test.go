package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kegliz/qcore/internal/compilestore"
	"github.com/kegliz/qcore/internal/config"
	"github.com/kegliz/qcore/internal/logger"
	"github.com/kegliz/qcore/internal/server/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AppTestSuite struct {
	suite.Suite
	server *appServer
}

func (s *AppTestSuite) SetupTest() {
	l := logger.NewLogger(logger.LoggerOptions{Debug: true})
	r := router.NewRouter(router.RouterOptions{Logger: l})
	s.server = newAppServer(appServerOptions{
		logger:  l,
		router:  r,
		factory: newDriverFactory(),
		store:   compilestore.New(),
		version: "test",
	})
}

func (s *AppTestSuite) doRequest(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.server.router.ServeHTTP(rec, req)
	return rec
}

func (s *AppTestSuite) TestHealth() {
	rec := s.doRequest(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("OK", rec.Body.String())
}

func (s *AppTestSuite) TestListPasses() {
	rec := s.doRequest(http.MethodGet, "/passes", nil)
	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		Types []string `json:"types"`
	}
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	s.Contains(body.Types, "build.depgraph")
	s.Contains(body.Types, "schedule.asap")
}

func (s *AppTestSuite) TestCompile_BellKernel() {
	reqBody := CompileRequest{
		Kernels: []kernelRequest{
			{
				Name:   "bell",
				Qubits: 2,
				Gates: []gateRequest{
					{Type: "h", Qubits: []int{0}},
					{Type: "cnot", Qubits: []int{0, 1}},
				},
			},
		},
		Strategy: map[string]interface{}{
			"passes": []interface{}{"build.depgraph", "schedule.asap"},
		},
	}
	raw, err := json.Marshal(reqBody)
	require.NoError(s.T(), err)

	rec := s.doRequest(http.MethodPost, "/compile", raw)
	s.Equal(http.StatusOK, rec.Code)

	var resp CompileResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(s.T(), resp.Kernels, 1)
	s.Equal("bell", resp.Kernels[0].Name)
	s.Equal(2, resp.Kernels[0].Gates)
	s.Equal(uint64(2), resp.Kernels[0].Depth)
	s.NotEmpty(resp.ID)

	fetch := s.doRequest(http.MethodGet, "/compile/"+resp.ID, nil)
	s.Equal(http.StatusOK, fetch.Code)
}

func (s *AppTestSuite) TestCompile_UnknownPassTypeFails() {
	reqBody := CompileRequest{
		Kernels: []kernelRequest{{Name: "k", Qubits: 1}},
		Strategy: map[string]interface{}{
			"passes": []interface{}{"no.such.pass"},
		},
	}
	raw, err := json.Marshal(reqBody)
	require.NoError(s.T(), err)

	rec := s.doRequest(http.MethodPost, "/compile", raw)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AppTestSuite) TestGetCompileResult_UnknownIDNotFound() {
	rec := s.doRequest(http.MethodGet, "/compile/does-not-exist", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func TestNewServer_BuildsWithoutError(t *testing.T) {
	cfg, err := config.New(config.Options{})
	require.NoError(t, err)

	srv, err := NewServer(ServerOptions{C: cfg, Version: "v0"})
	assert.NoError(t, err)
	assert.NotNil(t, srv)
}
