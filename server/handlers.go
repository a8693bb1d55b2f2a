package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/bytearena/pendulum/common/utils"
	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/bytearena/pendulum/game/course"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

var defaultSpawnPosition = vector.MakeVector2(0, 2)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	utils.Check(err, "Failed to marshal response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case course.IsUnknownRobot(err):
		status = http.StatusNotFound
	case course.IsInvalidParameter(err):
		status = http.StatusBadRequest
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrapf(course.ErrInvalidParameter, "could not read request body: %s", err.Error())
	}
	return body, nil
}

func (server *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	server.withCourse(func(c *course.Course) {
		c.Reset()
	})

	writeJSON(w, http.StatusOK, struct{}{})
}

func (server *Server) handleSpawn(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req spawnRequest
	if err := decodeRequest(server.schemas.spawn, body, &req); err != nil {
		writeError(w, err)
		return
	}

	p := defaultSpawnPosition
	if req.P != nil {
		p = toVector2(req.P)
	}

	var id string
	server.withCourse(func(c *course.Course) {
		id, err = c.SpawnRobot(p, req.Params)
	})

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, spawnResponse{Id: id})
}

func (server *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req controlRequest
	if err := decodeRequest(server.schemas.control, body, &req); err != nil {
		writeError(w, err)
		return
	}

	var report course.TickReport
	server.withCourse(func(c *course.Course) {
		report, err = c.Control(req.Id, req.command(), req.DoControl, req.info())
	})

	if err != nil {
		writeError(w, err)
		return
	}

	server.ticks.Add(1)

	if data, err := json.Marshal(report); err == nil {
		if err := server.recorder.Record(req.Id, string(data)); err != nil {
			utils.Debug("pendulum-server", "Could not record tick; "+err.Error())
		}
	}

	writeJSON(w, http.StatusOK, report)
}

func (server *Server) handleCamera(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req cameraRequest
	if err := decodeRequest(server.schemas.camera, body, &req); err != nil {
		writeError(w, err)
		return
	}

	var viewpoint vector.Vector2
	server.withCourse(func(c *course.Course) {
		if req.Mode == string(course.CameraAuto) {
			viewpoint = c.SetCameraAuto()
			return
		}
		viewpoint, err = c.SetViewpoint(toVector2(req.P))
	})

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, viewpoint)
}

func (server *Server) handleGetFloor(w http.ResponseWriter, r *http.Request) {
	var floors [][]vector.Vector2
	server.withCourse(func(c *course.Course) {
		floors = c.Floors()
	})

	writeJSON(w, http.StatusOK, floors)
}

func (server *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var res achievementsResponse
	var err error
	server.withCourse(func(c *course.Course) {
		var robot *course.Robot
		robot, err = c.Robot(id)
		if err != nil {
			return
		}

		// copied: the course keeps appending once the lock is released
		res = achievementsResponse{
			Achievements: course.Achievements{
				Falls: append([]course.FallEvent{}, robot.Achievements.Falls...),
				Log:   append([]string{}, robot.Achievements.Log...),
			},
			Memory: robot.Memory,
		}
	})

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (server *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := server.upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Debug("viz-server", "upgrade: "+err.Error())
		return
	}

	watcher := NewWatcher(conn)
	server.watchers.Set(watcher.GetId(), watcher)

	defer func() {
		server.watchers.Remove(watcher.GetId())
		watcher.Close()
		conn.Close()
		utils.Debug("viz-server", "Watcher "+watcher.GetId()+" left")
	}()

	utils.Debug("viz-server", "Watcher "+watcher.GetId()+" joined")

	if frame, err := server.encodeFrame(); err == nil {
		watcher.Send(frame)
	}

	go watcher.writeLoop()
	watcher.readLoop()
}
