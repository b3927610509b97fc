// Package monitoring serves the state of a running game over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/ackslab/rck/monitoring/web"
	"github.com/ackslab/rck/sim"
	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// DefaultLogLines is the number of action log lines the monitor keeps.
const DefaultLogLines = 100

// QueueEntry is one pending event as shown by the monitor.
type QueueEntry struct {
	Subsystem     string  `json:"subsystem"`
	Handle        int     `json:"handle"`
	Name          string  `json:"name"`
	TimeRemaining float64 `json:"time_remaining"`
}

type nowRsp struct {
	Now         float64 `json:"now"`
	Advances    int     `json:"advances"`
	Dispatched  int     `json:"dispatched"`
	LastElapsed float64 `json:"last_elapsed"`
	Interrupted bool    `json:"interrupted"`
}

type calendarRsp struct {
	Now          float64      `json:"now"`
	Calendar     sim.DateTime `json:"calendar"`
	Text         string       `json:"text"`
	LastCrossing sim.Crossing `json:"last_crossing"`
}

type subsystemDump struct {
	body []byte
	err  error
}

// Monitor is a scheduler hook that keeps a copy of the scheduler state and
// serves it over HTTP. The HTTP handlers only read the copy, so the game can
// keep running on its own goroutine.
type Monitor struct {
	registry        *sim.Registry
	portNumber      int
	logLimit        int
	profileDuration time.Duration

	lock         sync.Mutex
	now          sim.VTimeInSec
	advances     int
	dispatched   int
	lastResult   sim.AdvanceResult
	lastCrossing sim.Crossing
	queue        []QueueEntry
	log          []string
	subsystems   map[string]subsystemDump
	progressBars []*ProgressBar
}

// NewMonitor creates a Monitor. The registry names the entities in the
// queue and provides the subsystems to inspect. It may be nil.
func NewMonitor(registry *sim.Registry) *Monitor {
	return &Monitor{
		registry:        registry,
		logLimit:        DefaultLogLines,
		profileDuration: time.Second,
		subsystems:      make(map[string]subsystemDump),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogLines sets how many action log lines are kept.
func (m *Monitor) WithLogLines(n int) *Monitor {
	if n < 1 {
		n = 1
	}

	m.logLimit = n

	return m
}

// Func implements sim.Hook.
func (m *Monitor) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosQueueChanged:
		queue, ok := ctx.Item.(sim.EventQueue)
		if !ok {
			return
		}

		entries := m.entriesOf(queue.Snapshot())

		m.lock.Lock()
		m.queue = entries
		m.lock.Unlock()
	case sim.HookPosPeriodic:
		c, ok := ctx.Item.(sim.Crossing)
		if !ok {
			return
		}

		m.lock.Lock()
		m.lastCrossing = c
		m.lock.Unlock()
	case sim.HookPosAfterAdvance:
		result, ok := ctx.Item.(sim.AdvanceResult)
		if !ok {
			return
		}

		dumps := m.dumpSubsystems()

		m.lock.Lock()
		defer m.lock.Unlock()

		m.now = ctx.Now
		m.advances++
		m.dispatched += result.Dispatched
		m.lastResult = result
		m.subsystems = dumps

		for _, b := range m.progressBars {
			b.update(uint64(ctx.Now), uint64(len(m.queue)))
		}
	}
}

func (m *Monitor) entriesOf(events []sim.ScheduledEvent) []QueueEntry {
	entries := make([]QueueEntry, 0, len(events))
	for _, evt := range events {
		name := evt.Key().String()
		if m.registry != nil {
			name = m.registry.NameOf(evt.Key())
		}

		entries = append(entries, QueueEntry{
			Subsystem:     evt.Tag.String(),
			Handle:        int(evt.Handle),
			Name:          name,
			TimeRemaining: float64(evt.TimeRemaining),
		})
	}

	return entries
}

func (m *Monitor) dumpSubsystems() map[string]subsystemDump {
	dumps := make(map[string]subsystemDump)
	if m.registry == nil {
		return dumps
	}

	for _, tag := range m.registry.Tags() {
		dumps[tag.String()] = serializeSubsystem(m.registry.Get(tag))
	}

	return dumps
}

func serializeSubsystem(s sim.Subsystem) (dump subsystemDump) {
	defer func() {
		if r := recover(); r != nil {
			dump = subsystemDump{err: fmt.Errorf("serialize: %v", r)}
		}
	}()

	buf := bytes.NewBuffer(nil)

	serializer := goseth.NewSerializer()
	serializer.SetRoot(s)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(buf)

	return subsystemDump{body: buf.Bytes(), err: err}
}

// RecordLine keeps an action log line. It has the shape of a log listener.
func (m *Monitor) RecordLine(line string) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.log = append(m.log, line)
	if over := len(m.log) - m.logLimit; over > 0 {
		m.log = append([]string(nil), m.log[over:]...)
	}
}

// TrackClock creates a progress bar that follows the master clock up to
// total simulated seconds.
func (m *Monitor) TrackClock(name string, total sim.VTimeInSec) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     uint64(total),
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	bar.update(uint64(m.now), uint64(len(m.queue)))
	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.lock.Lock()
	defer m.lock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the router serving the monitoring API and the web page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/now", m.serveNow)
	r.HandleFunc("/api/calendar", m.serveCalendar)
	r.HandleFunc("/api/queue", m.serveQueue)
	r.HandleFunc("/api/log", m.serveLog)
	r.HandleFunc("/api/subsystem/{tag}", m.serveSubsystem)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts serving in the background and returns the URL of the
// monitor.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", fmt.Errorf("monitor listen on %s: %w", actualPort, err)
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring game with %s\n", url)

	server := &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := server.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			dieOnErr(err)
		}
	}()

	return url, nil
}

func (m *Monitor) serveNow(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	rsp := nowRsp{
		Now:         float64(m.now),
		Advances:    m.advances,
		Dispatched:  m.dispatched,
		LastElapsed: float64(m.lastResult.Elapsed),
		Interrupted: m.lastResult.Interrupted,
	}
	m.lock.Unlock()

	writeJSON(w, rsp)
}

func (m *Monitor) serveCalendar(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	now := m.now
	crossing := m.lastCrossing
	m.lock.Unlock()

	calendar := sim.CalendarOf(now)
	writeJSON(w, calendarRsp{
		Now:          float64(now),
		Calendar:     calendar,
		Text:         calendar.String(),
		LastCrossing: crossing,
	})
}

func (m *Monitor) serveQueue(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	entries := append([]QueueEntry{}, m.queue...)
	m.lock.Unlock()

	writeJSON(w, entries)
}

func (m *Monitor) serveLog(w http.ResponseWriter, r *http.Request) {
	limit := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Error: invalid limit %q", limitStr)
			return
		}

		limit = n
	}

	m.lock.Lock()
	lines := append([]string{}, m.log...)
	m.lock.Unlock()

	if limit > 0 && limit < len(lines) {
		lines = lines[len(lines)-limit:]
	}

	writeJSON(w, lines)
}

func (m *Monitor) serveSubsystem(w http.ResponseWriter, r *http.Request) {
	tag := mux.Vars(r)["tag"]

	m.lock.Lock()
	dump, found := m.subsystems[tag]
	m.lock.Unlock()

	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Subsystem not found"))
		dieOnErr(err)

		return
	}

	if dump.err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "Error: %s", dump.err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write(dump.body)
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	bars := make([]ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.copy())
	}
	m.lock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
