package monitoring

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytearena/pendulum/common/utils"
)

// Monitor periodically logs the rate of its named counters.
type Monitor struct {
	service  string
	interval time.Duration

	lock     sync.Mutex
	counters map[string]*Counter

	stop chan struct{}
	done chan struct{}
}

func NewMonitor(service string, interval time.Duration) *Monitor {
	return &Monitor{
		service:  service,
		interval: interval,
		counters: make(map[string]*Counter),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Counter returns the counter registered under name, creating it if needed.
func (monitor *Monitor) Counter(name string) *Counter {
	monitor.lock.Lock()
	defer monitor.lock.Unlock()

	counter, ok := monitor.counters[name]
	if !ok {
		counter = NewCounter()
		monitor.counters[name] = counter
	}

	return counter
}

// Snapshot reads and resets every counter.
func (monitor *Monitor) Snapshot() map[string]int {
	monitor.lock.Lock()
	defer monitor.lock.Unlock()

	res := make(map[string]int, len(monitor.counters))
	for name, counter := range monitor.counters {
		res[name] = counter.GetAndReset()
	}

	return res
}

func (monitor *Monitor) Start() {
	go func() {
		defer close(monitor.done)

		ticker := time.NewTicker(monitor.interval)
		defer ticker.Stop()

		for {
			select {
			case <-monitor.stop:
				return
			case <-ticker.C:
				monitor.report()
			}
		}
	}()
}

// Stop ends the reporting loop; it must be called once, after Start.
func (monitor *Monitor) Stop() {
	close(monitor.stop)
	<-monitor.done
}

func (monitor *Monitor) report() {
	snapshot := monitor.Snapshot()
	if len(snapshot) == 0 {
		return
	}

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	context := utils.Context{}
	for _, name := range names {
		parts = append(parts, strconv.Itoa(snapshot[name])+" "+name+" per "+monitor.interval.String())
		context[name] = snapshot[name]
	}

	utils.DebugWithContext(monitor.service, "-- MONITORING -- "+strings.Join(parts, "; "), context)
}
