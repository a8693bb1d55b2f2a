package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/bytearena/pendulum/common/monitoring"
	"github.com/bytearena/pendulum/common/recording"
	"github.com/bytearena/pendulum/common/utils"
	"github.com/bytearena/pendulum/game/course"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const defaultFrameInterval = time.Second / 30

// Server exposes a course over HTTP. Every course operation goes through the
// server lock: the course itself is single-threaded.
type Server struct {
	host string
	port int

	lock   sync.Mutex
	course *course.Course

	recorder recording.Recorder
	ticks    *monitoring.Counter
	frames   *monitoring.Counter

	schemas   *requestSchemas
	watchers  *WatcherMap
	upgrader  websocket.Upgrader
	accessLog io.Writer

	frameInterval time.Duration
	httpServer    *http.Server
	stopBroadcast chan struct{}
	broadcastDone chan struct{}
}

func NewServer(host string, port int, c *course.Course, recorder recording.Recorder, monitor *monitoring.Monitor) *Server {
	if recorder == nil {
		recorder = recording.MakeEmptyRecorder()
	}

	if monitor == nil {
		monitor = monitoring.NewMonitor("pendulum-server", time.Minute)
	}

	return &Server{
		host:     host,
		port:     port,
		course:   c,
		recorder: recorder,
		ticks:    monitor.Counter("ticks"),
		frames:   monitor.Counter("frames"),
		schemas:  compileRequestSchemas(),
		watchers: NewWatcherMap(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		accessLog:     os.Stdout,
		frameInterval: defaultFrameInterval,
		stopBroadcast: make(chan struct{}),
		broadcastDone: make(chan struct{}),
	}
}

func (server *Server) SetAccessLog(w io.Writer) {
	server.accessLog = w
}

func (server *Server) SetFrameInterval(interval time.Duration) {
	server.frameInterval = interval
}

func (server *Server) Router() http.Handler {
	router := mux.NewRouter()

	route := func(path string, handler http.HandlerFunc, method string) {
		router.Handle(path, handlers.CombinedLoggingHandler(server.accessLog, handler)).Methods(method)
	}

	route("/api/reset/", server.handleReset, "POST")
	route("/api/spawn/", server.handleSpawn, "POST")
	route("/api/control/", server.handleControl, "POST")
	route("/api/camera/", server.handleCamera, "POST")
	route("/api/getfloor/", server.handleGetFloor, "GET")
	route("/api/robot/{id:[a-zA-Z0-9\\-]+}/achievements/", server.handleAchievements, "GET")
	route("/api/viz/ws", server.handleWebsocket, "GET")

	return router
}

func (server *Server) Addr() string {
	return server.host + ":" + strconv.Itoa(server.port)
}

// Listen serves the API and streams viz frames until Stop is called.
func (server *Server) Listen() error {
	server.httpServer = &http.Server{
		Addr:    server.Addr(),
		Handler: server.Router(),
	}

	go server.broadcastLoop()

	log.Println("Pendulum server listening on " + server.Addr())

	err := server.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

func (server *Server) Stop() error {
	var err error
	if server.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = server.httpServer.Shutdown(ctx)

		close(server.stopBroadcast)
		<-server.broadcastDone
	}

	for _, watcher := range server.watchers.All() {
		watcher.Close()
	}

	if recErr := server.recorder.Close(); err == nil {
		err = recErr
	}

	utils.Debug("pendulum-server", "Server stopped")

	return err
}

// withCourse runs fn with exclusive access to the course.
func (server *Server) withCourse(fn func(c *course.Course)) {
	server.lock.Lock()
	defer server.lock.Unlock()

	fn(server.course)
}

func (server *Server) broadcastLoop() {
	defer close(server.broadcastDone)

	ticker := time.NewTicker(server.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-server.stopBroadcast:
			return
		case <-ticker.C:
			server.broadcastFrame()
		}
	}
}

func (server *Server) broadcastFrame() {
	watchers := server.watchers.All()
	if len(watchers) == 0 {
		return
	}

	frame, err := server.encodeFrame()
	if err != nil {
		utils.Debug("pendulum-server", "Could not encode viz frame; "+err.Error())
		return
	}

	for _, watcher := range watchers {
		watcher.Send(frame)
	}

	server.frames.Add(1)
}

func (server *Server) encodeFrame() ([]byte, error) {
	var msg vizFrameMessage
	server.withCourse(func(c *course.Course) {
		msg = vizFrameMessage{
			Type: "frame",
			Data: c.GetVizFrame(),
		}
	})

	return json.Marshal(msg)
}

// CourseCheck reports whether the course answers within the server lock.
func (server *Server) CourseCheck() (error, bool) {
	ok := false
	server.withCourse(func(c *course.Course) {
		ok = c.Time() >= 0
	})

	return nil, ok
}
