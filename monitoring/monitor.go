// Package monitoring serves the state of registered iteration stacks over
// HTTP for manual inspection of long-running computations.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/syifan/goseth"

	"github.com/solverlab/iterrec/rank"
	"github.com/solverlab/iterrec/recording"
)

// Monitor turns the iteration stacks of a process into a small web server
// so that the current nesting and coordinates can be inspected while the
// computation runs.
type Monitor struct {
	portNumber int
	listener   net.Listener

	stacks map[string]monitoredStack
}

type monitoredStack struct {
	stack *recording.IterationStack
	ranks rank.Provider
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		stacks: make(map[string]monitoredStack),
	}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// rejected and a random port is used instead.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterStack registers an iteration stack to be monitored under the
// given name. The rank provider may be nil, in which case coordinates are
// formatted with rank 0.
func (m *Monitor) RegisterStack(
	name string,
	stack *recording.IterationStack,
	ranks rank.Provider,
) {
	if stack == nil {
		panic("monitored stack must not be nil")
	}

	if _, exists := m.stacks[name]; exists {
		panic("stack " + name + " already registered")
	}

	m.stacks[name] = monitoredStack{stack: stack, ranks: ranks}
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := m.router()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.listener = listener

	fmt.Fprintf(os.Stderr,
		"Monitoring iteration stacks with http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		// Serve returns with an error once StopServer closes the listener.
		_ = http.Serve(listener, r)
	}()
}

// StopServer stops the monitor server.
func (m *Monitor) StopServer() {
	if m.listener == nil {
		return
	}

	listener := m.listener
	m.listener = nil
	_ = listener.Close()
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/stacks", m.listStacks)
	r.HandleFunc("/api/stack/{name}", m.stackDetails)
	r.HandleFunc("/api/coordinate/{name}", m.coordinate)
	r.HandleFunc("/api/dump/{name}", m.dump)

	return r
}

func (m *Monitor) listStacks(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.stacks))
	for name := range m.stacks {
		names = append(names, name)
	}
	sort.Strings(names)

	writeJSON(w, names)
}

type stackDetails struct {
	Name   string         `json:"name"`
	Prefix string         `json:"prefix"`
	Depth  int            `json:"depth"`
	Frames []frameDetails `json:"frames"`
}

type frameDetails struct {
	Name      string `json:"name"`
	IterCount int    `json:"iter_count"`
}

func (m *Monitor) stackDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	monitored, ok := m.findStackOr404(w, name)
	if !ok {
		return
	}

	details := stackDetails{
		Name:   name,
		Prefix: monitored.stack.Prefix(),
		Depth:  monitored.stack.Depth(),
		Frames: []frameDetails{},
	}
	for _, frame := range monitored.stack.Frames() {
		details.Frames = append(details.Frames, frameDetails{
			Name:      frame.Name,
			IterCount: frame.IterCount,
		})
	}

	writeJSON(w, details)
}

func (m *Monitor) coordinate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	monitored, ok := m.findStackOr404(w, name)
	if !ok {
		return
	}

	coordinate := recording.Coordinate(
		monitored.stack, rank.RankOrZero(monitored.ranks))

	_, err := w.Write([]byte(coordinate))
	dieOnErr(err)
}

func (m *Monitor) dump(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	monitored, ok := m.findStackOr404(w, name)
	if !ok {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(monitored.stack)
	serializer.SetMaxDepth(2)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) findStackOr404(
	w http.ResponseWriter,
	name string,
) (monitoredStack, bool) {
	monitored, ok := m.stacks[name]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
	}

	return monitored, ok
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(value)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
