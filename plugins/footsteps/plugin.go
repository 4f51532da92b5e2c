// Package footsteps connects the edit history tracker to the editor: it
// feeds edits and clicks to the tracker, highlights recently edited lines
// and provides the time-travel commands.
package footsteps

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/config"
	"github.com/bethropolis/footsteps/internal/decorate"
	"github.com/bethropolis/footsteps/internal/event"
	history "github.com/bethropolis/footsteps/internal/footsteps"
	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/plugin"
	"github.com/bethropolis/footsteps/internal/symbol"
	"github.com/bethropolis/footsteps/internal/types"
)

var (
	_ plugin.Plugin        = (*Footsteps)(nil)
	_ plugin.LineDecorator = (*Footsteps)(nil)
)

const (
	pluginName    = "footsteps"
	indicatorName = "steps"
)

// Footsteps is the editor plugin around a history.Tracker.
type Footsteps struct {
	api      plugin.EditorAPI
	tracker  *history.Tracker
	resolver *symbol.Resolver
	copy     func(string) error

	mu           sync.Mutex
	opts         decorate.Options
	palette      *decorate.Palette
	highlight    bool
	clearOnSave  bool
	useClipboard bool
}

// New creates the plugin with an empty history.
func New() *Footsteps {
	return &Footsteps{
		tracker:  history.New(),
		resolver: symbol.NewResolver(),
		copy:     clipboard.WriteAll,
	}
}

// Name returns the unique name of the plugin.
func (p *Footsteps) Name() string {
	return pluginName
}

// Tracker exposes the underlying history.
func (p *Footsteps) Tracker() *history.Tracker {
	return p.tracker
}

// Initialize applies the configuration, subscribes to editor events and
// registers the commands.
func (p *Footsteps) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := p.applyConfig(api.GetConfig()); err != nil {
		logger.Warnf("%s: %v", pluginName, err)
	}

	api.SubscribeEvent(event.TypeTextChanged, p.onTextChanged)
	api.SubscribeEvent(event.TypeCursorClicked, p.onCursorClicked)
	api.SubscribeEvent(event.TypeCursorMoved, p.onCursorMoved)
	api.SubscribeEvent(event.TypeBufferSaved, p.onBufferSaved)
	api.SubscribeEvent(event.TypeConfigReloaded, p.onConfigReloaded)

	for name, fn := range p.commands() {
		if err := api.RegisterCommand(name, fn); err != nil {
			return fmt.Errorf("registering '%s': %w", name, err)
		}
	}
	api.RegisterDecorator(p)

	logger.Infof("%s initialized (capacity %d, merge window %d)",
		pluginName, api.GetConfig().Footsteps.MaxChunksToRemember, api.GetConfig().Footsteps.MaxChunksConsideredForMerge)
	return nil
}

// Shutdown has nothing to release.
func (p *Footsteps) Shutdown() error {
	return nil
}

// applyConfig copies the footsteps settings into the tracker and the
// decoration options. A bad highlight colour keeps the previous palette.
func (p *Footsteps) applyConfig(cfg *config.Config) error {
	fc := cfg.Footsteps
	p.tracker.Configure(fc.MaxChunksToRemember, fc.MaxChunksConsideredForMerge)
	p.tracker.SetBlankEditsIgnored(fc.IgnoreBlankEdits)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.highlight = fc.HighlightChanges
	p.clearOnSave = fc.ClearOnSave
	p.useClipboard = cfg.Editor.SystemClipboard
	p.opts = decorate.Options{
		MaxOpacity:            fc.HighlightMaxOpacity,
		Levels:                fc.MaxChunksToHighlight,
		MinDistance:           fc.MinDistanceFromCursor,
		HighlightEmptyLines:   fc.HighlightEmptyLines,
		HighlightFocusedChunk: fc.HighlightFocusedChunk,
	}

	_, bg, _ := p.api.GetThemeStyle("Default").Decompose()
	palette, err := decorate.NewPalette(fc.HighlightColor, bg)
	if err != nil {
		return fmt.Errorf("highlight color: %w", err)
	}
	p.palette = palette
	return nil
}

// LineStyles returns the highlight of each recently edited line of path.
func (p *Footsteps) LineStyles(path string, cursor types.Position) map[int]tcell.Style {
	p.mu.Lock()
	enabled, opts, palette := p.highlight, p.opts, p.palette
	p.mu.Unlock()
	if !enabled || palette == nil {
		return nil
	}

	chunks := p.tracker.ChunksInFile(path)
	if len(chunks) == 0 {
		return nil
	}
	decorations := decorate.Project(chunks, cursor, lineSource{api: p.api, path: path}, opts)
	return palette.Styles(p.api.GetThemeStyle("Default"), decorations)
}

// changed publishes the new history state and asks for a redraw.
func (p *Footsteps) changed() {
	n, cur := p.tracker.Len(), p.tracker.Cursor()
	if n == 0 {
		p.api.SetStatusIndicator(indicatorName, "")
	} else {
		p.api.SetStatusIndicator(indicatorName, fmt.Sprintf("steps %d/%d", cur+1, n))
	}
	p.api.DispatchEvent(event.TypeFootstepsChanged, event.FootstepsChangedData{Count: n, Cursor: cur})
	p.api.RequestRedraw()
}

func (p *Footsteps) onTextChanged(e event.Event) bool {
	data, ok := e.Data.(event.TextChangedData)
	if !ok || len(data.Changes) == 0 {
		return false
	}
	p.tracker.ReportEdit(data.FilePath, toEdits(data.Changes))
	p.changed()
	return false
}

func (p *Footsteps) onCursorClicked(e event.Event) bool {
	data, ok := e.Data.(event.CursorClickedData)
	if !ok {
		return false
	}
	p.tracker.ReportCursorClick(data.FilePath, data.Position.Line, data.LineLength)
	p.changed()
	return false
}

// onCursorMoved redraws when the highlights depend on where the cursor is.
func (p *Footsteps) onCursorMoved(e event.Event) bool {
	p.mu.Lock()
	dependsOnCursor := p.highlight && (p.opts.MinDistance > 0 || !p.opts.HighlightFocusedChunk)
	p.mu.Unlock()
	if dependsOnCursor {
		p.api.RequestRedraw()
	}
	return false
}

func (p *Footsteps) onBufferSaved(e event.Event) bool {
	data, ok := e.Data.(event.BufferSavedData)
	if !ok {
		return false
	}
	p.mu.Lock()
	clearOnSave := p.clearOnSave
	p.mu.Unlock()
	if clearOnSave && p.tracker.ClearFile(data.FilePath) > 0 {
		p.changed()
	}
	return false
}

func (p *Footsteps) onConfigReloaded(e event.Event) bool {
	data, ok := e.Data.(event.ConfigReloadedData)
	if !ok {
		return false
	}
	cfg, ok := data.Config.(*config.Config)
	if !ok || cfg == nil {
		return false
	}
	if err := p.applyConfig(cfg); err != nil {
		p.api.SetStatusMessage("footsteps: %v", err)
	}
	p.changed()
	return false
}

// lineSource reads document lines through the editor API.
type lineSource struct {
	api  plugin.EditorAPI
	path string
}

func (s lineSource) Line(index int) ([]byte, error) {
	return s.api.GetBufferLine(s.path, index)
}
