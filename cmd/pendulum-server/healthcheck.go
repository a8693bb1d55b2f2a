package main

import (
	"strconv"

	"github.com/bytearena/pendulum/common/healthcheck"
	"github.com/bytearena/pendulum/common/utils"
	"github.com/bytearena/pendulum/server"
)

type healthCheck struct {
	server *healthcheck.HealthCheckServer
}

func startHealthCheck(host string, port int, srv *server.Server) *healthCheck {
	healthCheckServer := healthcheck.NewHealthCheckServer(host + ":" + strconv.Itoa(port))

	healthCheckServer.Register("course", func() (err error, ok bool) {
		return srv.CourseCheck()
	})

	go func() {
		if err := healthCheckServer.Listen(); err != nil {
			utils.WarnWith(err)
		}
	}()

	return &healthCheck{server: healthCheckServer}
}

func (check *healthCheck) Stop() {
	if err := check.server.Stop(); err != nil {
		utils.WarnWith(err)
	}
}
