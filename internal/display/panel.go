package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const defaultRefreshInterval = 100 * time.Millisecond

// TermPanel draws a bordered, in-place-updating block on the terminal. A
// fixed-interval ticker repaints when the content changed since the last
// paint; Update itself never touches the terminal, so appends stay cheap and
// content-stable ticks are free.
type TermPanel struct {
	mu      sync.Mutex
	w       io.Writer
	width   int
	refresh time.Duration

	title   string
	pending string
	painted string
	height  int

	done    chan struct{}
	stopped bool
}

// NewTermPanelFactory returns a PanelFactory producing panels bound to w.
func NewTermPanelFactory(w io.Writer, width int, refresh time.Duration) PanelFactory {
	if refresh <= 0 {
		refresh = defaultRefreshInterval
	}
	return func() Panel {
		return &TermPanel{w: w, width: width, refresh: refresh}
	}
}

func (p *TermPanel) Start(title string) {
	p.mu.Lock()
	p.title = title
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.run()
}

func (p *TermPanel) run() {
	ticker := time.NewTicker(p.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.mu.Lock()
			if p.pending != p.painted {
				p.paintLocked()
			}
			p.mu.Unlock()
		case <-p.done:
			return
		}
	}
}

func (p *TermPanel) Update(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.pending = text
}

// Stop paints the final content and leaves it in the scrollback.
func (p *TermPanel) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	close(p.done)
	if p.pending != p.painted {
		p.paintLocked()
	}
}

// paintLocked rewinds over the previous paint and redraws the whole block.
func (p *TermPanel) paintLocked() {
	if p.height > 0 {
		fmt.Fprintf(p.w, "\x1b[%dA\r\x1b[0J", p.height)
	}
	block := p.renderBlock(p.pending)
	fmt.Fprintln(p.w, block)
	p.painted = p.pending
	p.height = strings.Count(block, "\n") + 1
}

func (p *TermPanel) renderBlock(content string) string {
	width := p.width
	if width <= 0 {
		width = 80
	}
	title := runewidth.Truncate(p.title, width-4, "…")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("4")).
		Padding(0, 1).
		Width(width - 2)
	if content == "" {
		content = " "
	}
	return stylePanelTitle.Render(title) + "\n" + box.Render(content)
}
