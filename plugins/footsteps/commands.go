package footsteps

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	history "github.com/bethropolis/footsteps/internal/footsteps"
	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/plugin"
)

const listTimeout = 500 * time.Millisecond

func (p *Footsteps) commands() map[string]plugin.CommandFunc {
	return map[string]plugin.CommandFunc{
		"fs-back":          p.travel(1, history.RestrictAny),
		"fs-forward":       p.travel(-1, history.RestrictAny),
		"fs-back-file":     p.travel(1, history.RestrictWithinFile),
		"fs-forward-file":  p.travel(-1, history.RestrictWithinFile),
		"fs-back-other":    p.travel(1, history.RestrictAcrossFiles),
		"fs-forward-other": p.travel(-1, history.RestrictAcrossFiles),
		"fs-clear":         p.clearFile,
		"fs-clear-all":     p.clearAll,
		"fs-toggle":        p.toggle,
		"fs-list":          p.list,
		"fs-yank":          p.yank,
	}
}

// travel returns a command stepping direction chunks through the history.
// An optional numeric argument multiplies the step.
func (p *Footsteps) travel(direction int, r history.Restriction) plugin.CommandFunc {
	return func(args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid step count '%s'", args[0])
			}
			steps = n
		}

		loc, ok := p.tracker.TimeTravel(direction*steps, r, p.api.ActiveFile())
		if !ok {
			p.api.SetStatusMessage("No footsteps (%s)", r)
			return nil
		}
		if err := p.api.JumpTo(loc.FileID, loc.Position()); err != nil {
			return fmt.Errorf("jumping to %s: %w", loc, err)
		}
		p.changed()
		return nil
	}
}

func (p *Footsteps) clearFile(args []string) error {
	file := p.api.ActiveFile()
	if file == "" {
		return fmt.Errorf("no active file")
	}
	n := p.tracker.ClearFile(file)
	p.api.SetStatusMessage("Cleared %d footsteps in %s", n, filepath.Base(file))
	p.changed()
	return nil
}

func (p *Footsteps) clearAll(args []string) error {
	n := p.tracker.ClearAll()
	p.api.SetStatusMessage("Cleared %d footsteps", n)
	p.changed()
	return nil
}

// toggle flips line highlighting until the next config reload.
func (p *Footsteps) toggle(args []string) error {
	p.mu.Lock()
	p.highlight = !p.highlight
	on := p.highlight
	p.mu.Unlock()

	if on {
		p.api.SetStatusMessage("Footstep highlighting on")
	} else {
		p.api.SetStatusMessage("Footstep highlighting off")
	}
	p.api.RequestRedraw()
	return nil
}

func (p *Footsteps) yank(args []string) error {
	loc, ok := p.tracker.Current()
	if !ok {
		p.api.SetStatusMessage("No footsteps")
		return nil
	}
	p.mu.Lock()
	useClipboard := p.useClipboard
	p.mu.Unlock()
	if !useClipboard {
		p.api.SetStatusMessage("%s (system clipboard disabled)", loc)
		return nil
	}
	if err := p.copy(loc.String()); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	p.api.SetStatusMessage("Copied %s", loc)
	return nil
}

func (p *Footsteps) list(args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
	defer cancel()

	entries := p.Listing(ctx)
	if len(entries) == 0 {
		p.api.SetStatusMessage("No footsteps")
		return nil
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
		logger.Infof("footstep %s", e.String())
	}
	p.api.SetStatusMessage("%s", strings.Join(parts, "  "))
	return nil
}

// Entry is one line of the history listing.
type Entry struct {
	Index   int
	Current bool
	Locator history.Locator
	Lines   history.LineSet
	Scope   string
}

// String formats the entry as "2* main.go:14 Tracker.Report".
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(e.Index + 1))
	if e.Current {
		b.WriteByte('*')
	}
	fmt.Fprintf(&b, " %s:%d", filepath.Base(e.Locator.FileID), e.Locator.Line+1)
	if e.Scope != "" {
		b.WriteByte(' ')
		b.WriteString(e.Scope)
	}
	return b.String()
}

// Listing describes the history, most recent first, naming the code that
// encloses each chunk's last position where the language is known.
func (p *Footsteps) Listing(ctx context.Context) []Entry {
	chunks := p.tracker.Chunks()
	cursor := p.tracker.Cursor()

	wanted := make(map[string][]int)
	for _, c := range chunks {
		wanted[c.FileID] = append(wanted[c.FileID], c.LastPosition.Line)
	}
	scopes := make(map[string]map[int]string, len(wanted))
	for file, lines := range wanted {
		src := p.api.GetBufferBytes(file)
		if src == nil {
			continue
		}
		names, err := p.resolver.Scopes(ctx, file, src, lines)
		if err != nil {
			logger.Warnf("%s: resolving scopes in %s: %v", pluginName, file, err)
			continue
		}
		scopes[file] = names
	}

	entries := make([]Entry, len(chunks))
	for i, c := range chunks {
		entries[i] = Entry{
			Index:   i,
			Current: i == cursor,
			Locator: c.Locator(),
			Lines:   c.Lines,
			Scope:   scopes[c.FileID][c.LastPosition.Line],
		}
	}
	return entries
}
