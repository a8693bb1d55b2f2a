package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

type Context map[string]interface{}

type Message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

var (
	quiet     bool
	quietLock sync.RWMutex
)

// SetQuiet silences Debug output; used by tests and the --quiet flag.
func SetQuiet(q bool) {
	quietLock.Lock()
	quiet = q
	quietLock.Unlock()
}

func Debug(service string, message string) {
	DebugWithContext(service, message, nil)
}

func DebugWithContext(service string, message string, extra Context) {
	quietLock.RLock()
	silenced := quiet
	quietLock.RUnlock()

	if silenced {
		return
	}

	context := make(Context, len(extra)+1)

	if hostname, err := os.Hostname(); err == nil {
		context["hostname"] = hostname
	}

	for k, v := range extra {
		context[k] = v
	}

	messageStruct := Message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: message,
		Context: context,
	}

	data, _ := json.Marshal(messageStruct)

	fmt.Println(string(data))
}
