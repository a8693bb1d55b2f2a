package recording

// Recorder stores the control log of a session, one message per tick.
type Recorder interface {
	Record(robotID string, msg string) error
	Close() error
}
