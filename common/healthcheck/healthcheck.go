package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/bytearena/pendulum/common/utils"
)

type HealthCheckServer struct {
	lock     sync.RWMutex
	checkers []namedChecker

	server *http.Server
}

type HealthChecks struct {
	Status bool   `json:"status"`
	Name   string `json:"name"`
	Error  string `json:"error,omitempty"`
}

type HealthCheckHttpResponse struct {
	Checks     []HealthChecks `json:"checks"`
	StatusCode int            `json:"statusCode"`
}

type HealthCheckHandler func() (err error, ok bool)

type namedChecker struct {
	name    string
	handler HealthCheckHandler
}

func (server *HealthCheckServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := HealthCheckHttpResponse{
		Checks:     make([]HealthChecks, 0),
		StatusCode: http.StatusOK,
	}

	server.lock.RLock()
	checkers := server.checkers
	server.lock.RUnlock()

	for _, checker := range checkers {
		err, ok := checker.handler()

		check := HealthChecks{
			Name:   checker.name,
			Status: err == nil && ok,
		}

		if err != nil {
			check.Error = err.Error()
		}

		if !check.Status {
			res.StatusCode = http.StatusInternalServerError
		}

		res.Checks = append(res.Checks, check)
	}

	data, err := json.Marshal(res)
	utils.Check(err, "Failed to marshal response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	w.Write(data)
}

func NewHealthCheckServer(addr string) *HealthCheckServer {
	server := &HealthCheckServer{
		checkers: make([]namedChecker, 0),
	}

	mux := http.NewServeMux()
	mux.Handle("/health", server)

	server.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	return server
}

// Listen blocks until Stop is called.
func (server *HealthCheckServer) Listen() error {
	utils.Debug("healthcheck", "Listening on "+server.server.Addr)

	err := server.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

func (server *HealthCheckServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.server.Shutdown(ctx)
}

func (server *HealthCheckServer) Register(name string, handler HealthCheckHandler) {
	server.lock.Lock()
	defer server.lock.Unlock()

	server.checkers = append(server.checkers, namedChecker{
		name:    name,
		handler: handler,
	})
}
