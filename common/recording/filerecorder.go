package recording

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/bytearena/pendulum/common/utils"
	"github.com/pkg/errors"
)

type recordLine struct {
	Date    string          `json:"date"`
	RobotID string          `json:"robot"`
	Msg     json.RawMessage `json:"msg"`
}

// FileRecorder appends one JSON line per record to a file.
type FileRecorder struct {
	lock     sync.Mutex
	filename string
	file     *os.File
	writer   *bufio.Writer
	closed   bool
}

func MakeFileRecorder(filename string) (*FileRecorder, error) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open record file %s", filename)
	}

	utils.Debug("FileRecorder", "recording to "+filename)

	return &FileRecorder{
		filename: filename,
		file:     file,
		writer:   bufio.NewWriter(file),
	}, nil
}

// Record expects msg to be a JSON document.
func (r *FileRecorder) Record(robotID string, msg string) error {
	line, err := json.Marshal(recordLine{
		Date:    time.Now().Format(time.RFC3339Nano),
		RobotID: robotID,
		Msg:     json.RawMessage(msg),
	})
	if err != nil {
		return errors.Wrap(err, "could not serialize record")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return errors.New("recorder is closed")
	}

	if _, err := r.writer.Write(append(line, '\n')); err != nil {
		return errors.Wrapf(err, "could not write to %s", r.filename)
	}

	return nil
}

func (r *FileRecorder) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if err := r.writer.Flush(); err != nil {
		r.file.Close()
		return errors.Wrapf(err, "could not flush %s", r.filename)
	}

	utils.Debug("FileRecorder", "closed "+r.filename)

	return r.file.Close()
}
