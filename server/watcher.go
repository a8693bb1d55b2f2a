package server

import (
	"sync"
	"time"

	commontypes "github.com/bytearena/pendulum/common/types"
	"github.com/bytearena/pendulum/common/utils"
	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"
)

const (
	watcherWriteTimeout = 5 * time.Second
	watcherBacklog      = 4
)

// Watcher is a websocket client receiving viz frames.
type Watcher struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func NewWatcher(conn *websocket.Conn) *Watcher {
	return &Watcher{
		id:   uuid.NewV4().String(),
		conn: conn,
		send: make(chan []byte, watcherBacklog),
		done: make(chan struct{}),
	}
}

func (watcher *Watcher) GetId() string {
	return watcher.id
}

// Send queues a frame; frames are dropped when the client is too slow.
func (watcher *Watcher) Send(frame []byte) bool {
	select {
	case <-watcher.done:
		return false
	default:
	}

	select {
	case watcher.send <- frame:
		return true
	default:
		return false
	}
}

// writeLoop runs until the connection fails or Close is called.
func (watcher *Watcher) writeLoop() {
	for {
		select {
		case <-watcher.done:
			return
		case frame := <-watcher.send:
			watcher.conn.SetWriteDeadline(time.Now().Add(watcherWriteTimeout))
			if err := watcher.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				utils.Debug("viz-server", "Could not write to watcher "+watcher.id+"; "+err.Error())
				return
			}
		}
	}
}

// readLoop discards incoming messages; it is needed to notice when the client
// closes the socket.
func (watcher *Watcher) readLoop() {
	for {
		if _, _, err := watcher.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (watcher *Watcher) Close() {
	watcher.closeOnce.Do(func() {
		close(watcher.done)
	})
}

type WatcherMap struct {
	*commontypes.SyncMap
}

func NewWatcherMap() *WatcherMap {
	return &WatcherMap{
		commontypes.NewSyncMap(),
	}
}

func (wmap *WatcherMap) All() []*Watcher {
	res := make([]*Watcher, 0)
	for _, item := range wmap.Values() {
		if watcher, ok := item.(*Watcher); ok {
			res = append(res, watcher)
		}
	}
	return res
}
