// Package monitoring serves a running simulation over HTTP so that it can be
// inspected and controlled from a browser.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"slices"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/redstone/ic"
	"github.com/sarchlab/redstone/monitoring/web"
	"github.com/sarchlab/redstone/sim/timing"
	"github.com/sarchlab/redstone/world"
)

// A CountReporter reports how often each lifecycle step happened.
type CountReporter interface {
	Counts() map[string]uint64
}

// Monitor can turn a simulation into a server and allows external monitoring
// controlling of the simulation.
type Monitor struct {
	engine     timing.Engine
	mechanic   *ic.Mechanic
	counts     CountReporter
	metrics    *Metrics
	portNumber int
	server     *http.Server

	barsLock sync.Mutex
	bars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Zero and the
// privileged ports below 1000 mean a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		log.Printf("monitor cannot use port %d, using a random port", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e timing.Engine) {
	m.engine = e
}

// RegisterMechanic registers the IC mechanic whose instances are shown.
func (m *Monitor) RegisterMechanic(mechanic *ic.Mechanic) {
	m.mechanic = mechanic
}

// RegisterCounts registers where the lifecycle counts come from.
func (m *Monitor) RegisterCounts(c CountReporter) {
	m.counts = c
}

// RegisterMetrics registers the Prometheus metrics served at /metrics.
func (m *Monitor) RegisterMetrics(metrics *Metrics) {
	m.metrics = metrics
}

// CreateProgressBar adds a bar to the web page.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := newProgressBar(name, total, time.Now())

	m.barsLock.Lock()
	m.bars = append(m.bars, bar)
	m.barsLock.Unlock()

	return bar
}

// CompleteProgressBar removes a bar from the web page.
func (m *Monitor) CompleteProgressBar(bar *ProgressBar) {
	m.barsLock.Lock()
	defer m.barsLock.Unlock()

	m.bars = slices.DeleteFunc(m.bars, func(b *ProgressBar) bool {
		return b == bar
	})
}

// Router returns the handler that serves the API and the web page.
func (m *Monitor) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/ics", m.listICs)
	r.HandleFunc("/api/ic/{loc}", m.icDetails)
	r.HandleFunc("/api/selftriggers", m.listSelfTriggers)
	r.HandleFunc("/api/counts", m.listCounts)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	if m.metrics != nil {
		r.Handle("/metrics", m.metrics.Handler())
	}

	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer serves the monitor on localhost and returns its URL.
func (m *Monitor) StartServer(openBrowser bool) string {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", m.portNumber))
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	log.Printf("monitoring simulation with %s", url)

	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func(srv *http.Server) {
		err := srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panic(err)
		}
	}(m.server)

	if openBrowser {
		if err := browser.OpenURL(url); err != nil {
			log.Printf("cannot open browser: %v", err)
		}
	}

	return url
}

// StopServer stops the server, letting the requests in flight finish for up
// to a second.
func (m *Monitor) StopServer() {
	if m.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := m.server.Shutdown(ctx); err != nil {
		log.Printf("monitor did not stop cleanly: %v", err)
	}

	m.server = nil
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]uint64{"now": uint64(m.engine.Now())})
}

type icRsp struct {
	Location  string `json:"location"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	SignTitle string `json:"sign_title"`
}

func (m *Monitor) listICs(w http.ResponseWriter, _ *http.Request) {
	rsp := []icRsp{}

	m.engine.Inspect(func() {
		for _, loc := range m.mechanic.Locations() {
			instance, ok := m.mechanic.Instance(loc)
			if !ok {
				continue
			}

			entry := icRsp{
				Location:  loc.String(),
				Title:     instance.Title(),
				SignTitle: instance.SignTitle(),
			}

			if ident, ok := ic.ParseIdentifier(instance.Sign().Line(1)); ok {
				entry.ID = ident.ID
			}

			rsp = append(rsp, entry)
		}
	})

	writeJSON(w, rsp)
}

func (m *Monitor) icDetails(w http.ResponseWriter, r *http.Request) {
	loc, err := world.ParseLocation(mux.Vars(r)["loc"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	buf := bytes.NewBuffer(nil)
	found := false

	m.engine.Inspect(func() {
		instance, ok := m.mechanic.Instance(loc)
		if !ok {
			return
		}

		found = true

		serializer := goseth.NewSerializer()
		serializer.SetRoot(instance)
		serializer.SetMaxDepth(1)
		err = serializer.Serialize(buf)
	})

	if !found {
		http.Error(w, "IC not found", http.StatusNotFound)
		return
	}

	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(buf.Bytes())
	dieOnErr(err)
}

func (m *Monitor) listSelfTriggers(w http.ResponseWriter, _ *http.Request) {
	locs := []string{}

	m.engine.Inspect(func() {
		for _, loc := range m.mechanic.SelfTriggers().Locations() {
			locs = append(locs, loc.String())
		}
	})

	writeJSON(w, locs)
}

func (m *Monitor) listCounts(w http.ResponseWriter, _ *http.Request) {
	counts := map[string]uint64{}
	if m.counts != nil {
		counts = m.counts.Counts()
	}

	writeJSON(w, counts)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.barsLock.Lock()
	defer m.barsLock.Unlock()

	now := time.Now()
	bars := make([]progressRsp, 0, len(m.bars))
	for _, b := range m.bars {
		bars = append(bars, b.snapshot(now))
	}

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
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
