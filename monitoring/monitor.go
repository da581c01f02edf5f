// Package monitoring turns a running scheduler into a small web server so
// that its event stores can be inspected while the driver is live.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/Erk-/songbird/driver"
	"github.com/Erk-/songbird/events"
)

// Monitor can turn a scheduler into a server and allows external inspection
// of its event stores.
type Monitor struct {
	scheduler *driver.Scheduler

	portNumber  int
	openBrowser bool
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the monitor in the default browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterScheduler registers the scheduler to be monitored.
func (m *Monitor) RegisterScheduler(s *driver.Scheduler) {
	m.scheduler = s
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/stores", m.listStores)
	r.HandleFunc("/api/store/{name}", m.listStoreEntries)
	r.HandleFunc("/api/store/{name}/entry/{id}", m.entryDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring scheduler with %s\n", url)

	if m.openBrowser {
		_ = browser.OpenURL(url)
	}

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

type storeRsp struct {
	Name    string `json:"name"`
	Global  bool   `json:"global"`
	Entries int    `json:"entries"`
}

func (m *Monitor) listStores(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]storeRsp, 0)

	for _, s := range m.scheduler.Stores() {
		rsp = append(rsp, storeRsp{
			Name:    s.Name(),
			Global:  s.Global(),
			Entries: s.Len(),
		})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listStoreEntries(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	store := m.findStoreOr404(w, name)
	if store == nil {
		return
	}

	bytes, err := json.Marshal(store.Entries())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) entryDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	id := events.EntryID(mux.Vars(r)["id"])

	store := m.findStoreOr404(w, name)
	if store == nil {
		return
	}

	for _, e := range store.Entries() {
		if e.ID != id {
			continue
		}

		serializer := goseth.NewSerializer()
		serializer.SetRoot(e)
		serializer.SetMaxDepth(1)
		err := serializer.Serialize(w)
		dieOnErr(err)

		return
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Entry not found"))
	dieOnErr(err)
}

func (m *Monitor) findStoreOr404(
	w http.ResponseWriter,
	name string,
) *events.EventStore {
	var store *events.EventStore

	for _, s := range m.scheduler.Stores() {
		if s.Name() == name {
			store = s
		}
	}

	if store == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Store not found"))
		dieOnErr(err)
	}

	return store
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

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
