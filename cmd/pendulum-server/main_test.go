package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeappRegistersServe(t *testing.T) {
	app := makeapp()

	serve := app.Command("serve")
	require.NotNil(t, serve)
	alias := app.Command("s")
	require.NotNil(t, alias)
	assert.Equal(t, "serve", alias.Name)

	names := make([]string, 0)
	for _, flag := range serve.Flags {
		names = append(names, flag.GetName())
	}

	assert.ElementsMatch(t, []string{"host", "port", "health-port", "config", "record-file", "quiet"}, names)
}

func TestServeActionRejectsMissingConfig(t *testing.T) {
	err := serveAction("127.0.0.1", 0, 0, "/nonexistent/pendulum.yml", "", true)
	assert.Error(t, err)
}
