package grailui

import (
	"context"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"

	"github.com/wesen/grailnav/internal/config"
	"github.com/wesen/grailnav/internal/hostgraph"
	"github.com/wesen/grailnav/pkg/navigator"
)

// Options configure the application model.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// Source is the graph file shown; "" means the built-in demo.
	Source string
	// Context bounds the file watcher.
	Context context.Context
}

// dragKind is what a mouse drag on the canvas is moving.
type dragKind int

const (
	dragNone dragKind = iota
	dragPan
	dragNode
)

type dragState struct {
	kind   dragKind
	nodeID string
	// last pointer position for pans, grab offset in graph units for nodes
	lastX, lastY float64
	offX, offY   float64
}

// Model is the main application state.
type Model struct {
	Width, Height  int
	MouseX, MouseY int

	cfg    *config.Config
	log    *slog.Logger
	ctx    context.Context
	source string
	status string
	fitted bool

	engine   *hostgraph.Engine
	platform *termPlatform
	registry *navigator.MemoryRegistry
	nav      navigator.Controller // nil while the minimap is hidden

	help     help.Model
	showHelp bool

	timers  chan func()
	reloads chan reloadMsg

	drag dragState
}

// NewModel creates the model for engine and shows the minimap.
func NewModel(engine *hostgraph.Engine, o Options) (Model, error) {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	m := Model{
		cfg:      o.Config,
		log:      o.Logger,
		ctx:      o.Context,
		source:   o.Source,
		engine:   engine,
		platform: newTermPlatform(o.Logger),
		registry: navigator.NewRegistry(),
		help:     help.New(),
		timers:   make(chan func(), timerQueue),
		reloads:  make(chan reloadMsg, 1),
	}
	if err := navigator.Register(m.registry); err != nil {
		return Model{}, err
	}
	if err := m.showMinimap(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// showMinimap builds a navigator through the extension registry.
func (m *Model) showMinimap() error {
	opts := append(m.cfg.NavigatorOptions(),
		navigator.WithClock(newLoopClock(m.timers)),
		navigator.WithLogger(m.log),
	)
	nav, err := m.registry.Invoke(navigator.ExtensionKind, navigator.ExtensionName, m.engine, m.platform, opts...)
	if err != nil {
		return fmt.Errorf("create minimap: %w", err)
	}
	m.nav = nav
	return nil
}

func (m *Model) hideMinimap() {
	if m.nav == nil {
		return
	}
	m.nav.Destroy()
	m.nav = nil
}

// Engine returns the graph engine behind the canvas.
func (m Model) Engine() *hostgraph.Engine { return m.engine }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitTimer(m.timers), waitReload(m.reloads)}
	if m.source != "" && m.cfg.Watch.Enabled {
		cmds = append(cmds, watchGraph(m.ctx, m.source, m.cfg.Debounce(), m.reloads))
	}
	return tea.Batch(cmds...)
}
