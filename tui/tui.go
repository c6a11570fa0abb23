// Package tui is the interactive terminal front end: a log viewport with a
// command line, plus a container pane that mirrors the open modal. It
// implements the inventory module's Renderer and feeds pointer events into
// the input dispatcher.
package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voxelgate/client/pkg/client/modules/input"
	"github.com/voxelgate/client/pkg/items"
	"github.com/voxelgate/client/pkg/wire"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	slotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	emptySlotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// ClientInterface defines the methods required from a client for TUI
// interaction.
type ClientInterface interface {
	GetAddress() string
	SendCommand(cmd string) error
	Disconnect(force bool) error
}

// InventoryView is the read side of the container mirror the pane renders
// from. The inventory module satisfies it.
type InventoryView interface {
	Open() bool
	Menu() wire.Menu
	ContainerSlotCount() int
	Slots(kind wire.SourceKind) []items.ItemStack
	Cursor() items.ItemStack
}

// TUI is the terminal user interface model.
type TUI struct {
	client    ClientInterface
	inv       InventoryView
	dispatch  *input.Module
	viewport  viewport.Model
	textInput textinput.Model
	logs      []string
	logMutex  sync.Mutex
	ready     bool
	width     int
	height    int

	// container pane state, mirrored via renderer messages
	paneOpen bool
	ticking  bool
	frame    int
}

// New creates a new TUI instance. inv and dispatch may be nil for a
// log-only console.
func New(client ClientInterface, inv InventoryView, dispatch *input.Module) *TUI {
	ti := textinput.New()
	ti.Placeholder = "click c3 | rclick i12 | shift h1 | close | worlds mine"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &TUI{
		client:    client,
		inv:       inv,
		dispatch:  dispatch,
		textInput: ti,
		logs:      []string{},
	}
}

// Init initializes the TUI.
func (t *TUI) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles TUI updates.
func (t *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			t.client.Disconnect(true)
			return t, tea.Quit

		case tea.KeyEnter:
			line := strings.TrimSpace(t.textInput.Value())
			if line != "" {
				if err := t.client.SendCommand(line); err != nil {
					t.AddLog(fmt.Sprintf("error: %v", err))
				} else {
					t.AddLog("cmd > " + line)
				}
				t.textInput.SetValue("")
			}
			return t, nil
		}

	case tea.MouseMsg:
		// pointer buttons flow through the dispatcher so the gameplay-lock
		// gating is exercised by real input
		if t.dispatch != nil && msg.Action != tea.MouseActionMotion {
			code := input.CodeNone
			switch msg.Button {
			case tea.MouseButtonLeft:
				code = input.CodeMouseLeft
			case tea.MouseButtonRight:
				code = input.CodeMouseRight
			}
			if code != input.CodeNone {
				t.dispatch.Process(input.RawEvent{
					Device:  input.DeviceMouse,
					Code:    code,
					Pressed: msg.Action == tea.MouseActionPress,
				})
			}
		}
		return t, nil

	case tea.WindowSizeMsg:
		if !t.ready {
			t.viewport = viewport.New(msg.Width, msg.Height-3)
			t.viewport.SetContent(t.renderLogs())
			t.ready = true
		} else {
			t.viewport.Width = msg.Width
			t.viewport.Height = msg.Height - 3
		}
		t.width = msg.Width
		t.height = msg.Height
		t.textInput.Width = msg.Width - 2

	case LogMsg:
		t.AddLog(string(msg))
		if t.ready {
			// do not scroll if not at bottom, to prevent flickering
			wasAtBottom := t.viewport.AtBottom()
			t.viewport.SetContent(t.renderLogs())
			if wasAtBottom {
				t.viewport.GotoBottom()
			}
		}
		return t, nil

	case paneRefreshMsg:
		t.paneOpen = t.inv != nil && t.inv.Open()
		if t.paneOpen && !t.ticking {
			t.ticking = true
			return t, dragTick()
		}
		return t, nil

	case paneClearMsg:
		t.paneOpen = false
		return t, nil

	case dragTickMsg:
		// drag-cursor repaint runs only while a modal is open and stops
		// itself on close
		if !t.paneOpen {
			t.ticking = false
			return t, nil
		}
		t.frame++
		return t, dragTick()
	}

	// update viewport
	if t.ready {
		t.viewport, cmd = t.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	t.textInput, cmd = t.textInput.Update(msg)
	cmds = append(cmds, cmd)

	return t, tea.Batch(cmds...)
}

// View renders the TUI.
func (t *TUI) View() string {
	if !t.ready {
		return "Initializing..."
	}

	title := titleStyle.Render("voxelgate - " + t.client.GetAddress())
	help := helpStyle.Render("Enter: run command • Ctrl+C/Esc: quit")

	sections := []string{title}
	if t.paneOpen {
		sections = append(sections, t.renderPane())
	}
	sections = append(sections,
		t.viewport.View(),
		inputStyle.Render("> "+t.textInput.View()),
		help,
	)
	return strings.Join(sections, "\n")
}

func (t *TUI) renderPane() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s #%d]\n", t.inv.Menu(), t.inv.ContainerSlotCount())
	b.WriteString(renderGrid("container", t.inv.Slots(wire.SourceContainer)))
	b.WriteString(renderGrid("inventory", t.inv.Slots(wire.SourceInventory)))
	b.WriteString(renderGrid("hotbar", t.inv.Slots(wire.SourceHotbar)))

	cursor := t.inv.Cursor()
	marker := [4]string{"|", "/", "-", "\\"}[t.frame%4]
	if cursor.IsEmpty() {
		b.WriteString(cursorStyle.Render(marker + " cursor: empty"))
	} else {
		b.WriteString(cursorStyle.Render(fmt.Sprintf("%s cursor: %d x%d", marker, cursor.ID, cursor.Count)))
	}
	return b.String()
}

func renderGrid(label string, slots []items.ItemStack) string {
	var b strings.Builder
	b.WriteString(label + ":\n")
	for i, s := range slots {
		if s.IsEmpty() {
			b.WriteString(emptySlotStyle.Render("[ ·...· ]"))
		} else {
			b.WriteString(slotStyle.Render(fmt.Sprintf("[%3d x%2d]", s.ID, s.Count)))
		}
		if (i+1)%9 == 0 {
			b.WriteString("\n")
		}
	}
	if len(slots)%9 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// AddLog adds a log message to the TUI.
func (t *TUI) AddLog(msg string) {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	t.logs = append(t.logs, msg)
	if len(t.logs) > 500 {
		t.logs = t.logs[len(t.logs)-500:]
	}
}

func (t *TUI) renderLogs() string {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	return strings.Join(t.logs, "\n")
}

// LogMsg is a message type for logging.
type LogMsg string

type paneRefreshMsg struct{}
type paneClearMsg struct{}
type dragTickMsg time.Time

func dragTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return dragTickMsg(t)
	})
}

// Renderer forwards inventory redraws into the running program. The pane
// reads slot state straight from the inventory mirror, so per-slot messages
// only need to trigger a repaint.
type Renderer struct {
	program *tea.Program
}

// NewRenderer wraps a program as an inventory rendering backend.
func NewRenderer(program *tea.Program) *Renderer {
	return &Renderer{program: program}
}

func (r *Renderer) RenderSlot(kind wire.SourceKind, index int, stack items.ItemStack) {
	r.program.Send(paneRefreshMsg{})
}

func (r *Renderer) RenderCursor(stack items.ItemStack) {
	r.program.Send(paneRefreshMsg{})
}

func (r *Renderer) Refresh() {
	r.program.Send(paneRefreshMsg{})
}

func (r *Renderer) Clear() {
	r.program.Send(paneClearMsg{})
}

// Writer is an io.Writer that sends output to the TUI.
type Writer struct {
	program *tea.Program
}

// NewWriter creates a new TUI Writer.
func NewWriter(program *tea.Program) *Writer {
	return &Writer{program: program}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if msg != "" {
		w.program.Send(LogMsg(msg))
	}
	return len(p), nil
}

// Start creates and starts a new TUI program, returning the program and a
// writer for logging.
func Start(client ClientInterface, inv InventoryView, dispatch *input.Module) (*tea.Program, io.Writer) {
	t := New(client, inv, dispatch)
	p := tea.NewProgram(t, tea.WithAltScreen(), tea.WithMouseCellMotion())
	writer := NewWriter(p)
	return p, writer
}
