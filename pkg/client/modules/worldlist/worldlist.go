// Package worldlist mirrors the server's world-list datasets ("my worlds",
// "friends' worlds", ...). Each dataset carries a request version; responses
// for superseded requests are dropped instead of clobbering newer state.
package worldlist

import (
	"strings"
	"sync"
	"time"

	"github.com/voxelgate/client/pkg/client"
	"github.com/voxelgate/client/pkg/wire"
)

const ModuleName = "worldlist"

// Status is the fetch lifecycle of one dataset.
type Status uint8

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	}
	return "idle"
}

// Dataset is the mirrored state of one world list.
type Dataset struct {
	Status          Status
	Items           []wire.WorldSummary
	LastUpdated     time.Time
	LastRequestTime time.Time
	RequestVersion  int
	Err             string
}

type Module struct {
	client *client.Client
	mu     sync.RWMutex

	datasets map[string]*Dataset
	now      func() time.Time

	onChanged []func(kind string)
}

func New() *Module {
	return &Module{
		datasets: make(map[string]*Dataset),
		now:      time.Now,
	}
}

func (m *Module) Name() string { return ModuleName }

func (m *Module) Init(c *client.Client) { m.client = c }

func (m *Module) Reset() {
	m.mu.Lock()
	m.datasets = make(map[string]*Dataset)
	m.mu.Unlock()
}

// From returns the registered worldlist module, or nil.
func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}

// OnChanged registers a callback fired whenever a dataset transitions.
func (m *Module) OnChanged(cb func(kind string)) {
	m.onChanged = append(m.onChanged, cb)
}

// Dataset returns a copy of the named dataset. An unknown kind yields an
// idle zero dataset.
func (m *Module) Dataset(kind string) Dataset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d := m.datasets[kind]
	if d == nil {
		return Dataset{}
	}
	out := *d
	out.Items = append([]wire.WorldSummary(nil), d.Items...)
	return out
}

// Request marks the dataset loading, bumps its request version and asks the
// server for a refresh. The version only advances here, on the
// idle/ready → loading transition.
func (m *Module) Request(kind string) error {
	m.mu.Lock()
	d := m.datasets[kind]
	if d == nil {
		d = &Dataset{}
		m.datasets[kind] = d
	}
	d.Status = StatusLoading
	d.RequestVersion++
	d.LastRequestTime = m.now()
	version := d.RequestVersion
	m.mu.Unlock()

	m.fire(kind)
	return m.client.WriteMessage(wire.RequestWorldList{Kind: kind, Version: version})
}

func (m *Module) HandlePush(p *wire.Push) {
	if p.Type != wire.TypeWorldListResult {
		return
	}
	var d wire.WorldListResult
	if err := p.ReadInto(&d); err != nil {
		m.client.Logger.Println("worldlist:", err)
		return
	}

	m.mu.Lock()
	ds := m.datasets[d.Kind]
	if ds == nil || d.Version != ds.RequestVersion {
		// stale in-flight response, a newer request owns the dataset
		m.mu.Unlock()
		return
	}
	ds.Status = StatusReady
	ds.Items = d.Worlds
	ds.LastUpdated = m.now()
	ds.Err = d.Error
	m.mu.Unlock()

	m.fire(d.Kind)
}

func (m *Module) fire(kind string) {
	for _, cb := range m.onChanged {
		cb(kind)
	}
}

// HandleCommand implements "worlds <kind>" for the interactive console.
func (m *Module) HandleCommand(cmd string) (bool, error) {
	fields := strings.Fields(cmd)
	if len(fields) != 2 || fields[0] != "worlds" {
		return false, nil
	}
	return true, m.Request(fields[1])
}
