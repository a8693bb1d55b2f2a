package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bytearena/pendulum/common"
	"github.com/bytearena/pendulum/common/monitoring"
	"github.com/bytearena/pendulum/common/recording"
	"github.com/bytearena/pendulum/common/utils"
	"github.com/bytearena/pendulum/game/course"
	"github.com/bytearena/pendulum/server"
)

const (
	TIME_BEFORE_FORCE_QUIT = 10 * time.Second

	version = "0.3.0"
)

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		utils.FailWith(err)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "pendulum-server"
	app.Usage = "Inverted pendulum course simulator"
	app.Version = version

	app.Commands = []cli.Command{
		{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "Run the simulator and its HTTP API",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "host", Value: "0.0.0.0", Usage: "IP serving the API"},
				cli.IntFlag{Name: "port", Value: 8933, Usage: "Port serving the API"},
				cli.IntFlag{Name: "health-port", Value: 8934, Usage: "Port serving /health; 0 disables it"},
				cli.StringFlag{Name: "config", Value: "", Usage: "YAML file with physics settings and robot defaults"},
				cli.StringFlag{Name: "record-file", Value: "", Usage: "Destination file for recording every tick"},
				cli.BoolFlag{Name: "quiet", Usage: "Disable debug logging"},
			},
			Action: func(c *cli.Context) error {
				return serveAction(
					c.String("host"),
					c.Int("port"),
					c.Int("health-port"),
					c.String("config"),
					c.String("record-file"),
					c.Bool("quiet"),
				)
			},
		},
	}

	return app
}

func serveAction(host string, port int, healthPort int, configFile string, recordFile string, quiet bool) error {
	utils.SetQuiet(quiet)

	config := course.DefaultConfig()
	if configFile != "" {
		var err error
		config, err = course.LoadConfig(configFile)
		if err != nil {
			return errors.Wrap(err, "invalid configuration")
		}
	}
	config.Version = version
	config.Port = port

	c, err := course.NewCourse(config, course.PopulateCourse)
	if err != nil {
		return errors.Wrap(err, "could not build the course")
	}

	var recorder recording.Recorder = recording.MakeEmptyRecorder()
	if recordFile != "" {
		fileRecorder, err := recording.MakeFileRecorder(recordFile)
		if err != nil {
			return err
		}
		recorder = fileRecorder
	}

	monitor := monitoring.NewMonitor("monitoring", time.Second)
	monitor.Start()
	defer monitor.Stop()

	srv := server.NewServer(host, port, c, recorder, monitor)

	var health *healthCheck
	if healthPort > 0 {
		health = startHealthCheck(host, healthPort, srv)
	}

	serverChan := make(chan error, 1)
	go func() {
		serverChan <- srv.Listen()
	}()

	fmt.Println("\033[0;34m\nPendulum simulator running at http://localhost:" + strconv.Itoa(port) + "/\033[0m\n")

	// Wait until someone asks for shutdown
	select {
	case err := <-serverChan:
		if err != nil {
			return errors.Wrap(err, "server failure")
		}
	case <-common.SignalHandler():
	}

	// Force quit if the programs didn't exit
	go func() {
		<-time.After(TIME_BEFORE_FORCE_QUIT)
		utils.FailWith(errors.New("Forced shutdown"))
	}()

	log.Println("Shutdown...")

	if health != nil {
		health.Stop()
	}

	return srv.Stop()
}
