package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcechart/internal/config"
	"github.com/matzehuels/forcechart/pkg/editor"
	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/graph"
	"github.com/matzehuels/forcechart/pkg/remote"
)

const (
	headerRows = 1
	footerRows = 2

	// ticksPerSecond is the simulation rate the layout is tuned for.
	ticksPerSecond = 60
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	badgeStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	detailsStyle = lipgloss.NewStyle().Foreground(colorWhite)
	modalStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorRed).Padding(0, 1)
	confirmStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorYellow).Padding(0, 1)
)

// =============================================================================
// Messages
// =============================================================================

// frameMsg advances the layout.
type frameMsg time.Time

// remoteMsg carries the result of fetching the viewed document.
type remoteMsg struct {
	data []byte
	err  error
}

// fetchFunc downloads a document.
type fetchFunc func(ctx context.Context, url string) ([]byte, error)

// =============================================================================
// Model
// =============================================================================

// tuiModel hosts an editor in the terminal. Terminal cells map to canvas
// pixels through cs; the canvas fills the screen between header and footer.
type tuiModel struct {
	ctx    context.Context
	ed     *editor.Editor
	logger *log.Logger
	cfg    config.TUIConfig
	cs     cellSize

	cols, rows int

	dialog       *dialog
	confirmClear bool
	modal        string
	status       string

	// url is the remote document still being fetched.
	url   string
	fetch fetchFunc
	spin  spinner.Model
}

func newTUIModel(ctx context.Context, ed *editor.Editor, logger *log.Logger, cfg config.TUIConfig, url string) tuiModel {
	return tuiModel{
		ctx:    ctx,
		ed:     ed,
		logger: logger,
		cfg:    cfg,
		cs:     cellSize{w: cfg.CellWidth, h: cfg.CellHeight},
		url:    url,
		fetch:  remote.New(nil).Fetch,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleIconSpinner)),
	}
}

func (m tuiModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frame()}
	if m.url != "" {
		cmds = append(cmds, m.spin.Tick, m.fetchRemote())
	}
	return tea.Batch(cmds...)
}

func (m tuiModel) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(1, m.cfg.FPS)), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m tuiModel) fetchRemote() tea.Cmd {
	ctx, url, fetch := m.ctx, m.url, m.fetch
	return func() tea.Msg {
		data, err := fetch(ctx, url)
		return remoteMsg{data: data, err: err}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.ed.Resize(float64(m.cols)*m.cs.w, float64(m.canvasRows())*m.cs.h)
		return m, nil

	case frameMsg:
		steps := max(1, ticksPerSecond/max(1, m.cfg.FPS))
		for range steps {
			if !m.ed.Tick() {
				break
			}
		}
		return m, m.frame()

	case spinner.TickMsg:
		if m.url == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case remoteMsg:
		m.url = ""
		if msg.err != nil {
			m.logger.Warn("fetch failed", "error", msg.err)
			m.modal = errors.UserMessage(msg.err)
			return m, nil
		}
		if err := m.ed.Load(m.ctx, msg.data); err != nil {
			m.logger.Warn("remote document rejected", "error", err)
			m.modal = remote.Hint
			return m, nil
		}
		m.status = "Loaded remote board"
		return m, nil

	case tea.MouseMsg:
		if m.modal != "" || m.dialog != nil || m.confirmClear {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m tuiModel) canvasRows() int {
	return max(1, m.rows-headerRows-footerRows)
}

// =============================================================================
// Input
// =============================================================================

func (m tuiModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	row := msg.Y - headerRows
	p := m.cs.toCanvas(msg.X, row)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if row < 0 || row >= m.canvasRows() {
			return m, nil
		}
		if key, ok := m.menuHit(msg.X, row); ok {
			return m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		}
		m.apply(m.ed.Dispatch(m.ctx, editor.Event{Kind: editor.PointerDown, Pos: p}))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		if row < 0 || row >= m.canvasRows() {
			return m, nil
		}
		m.apply(m.ed.Dispatch(m.ctx, editor.Event{Kind: editor.ContextMenu, Pos: p}))
	case msg.Action == tea.MouseActionMotion:
		m.apply(m.ed.Dispatch(m.ctx, editor.Event{Kind: editor.PointerMove, Pos: p}))
	case msg.Action == tea.MouseActionRelease:
		m.apply(m.ed.Dispatch(m.ctx, editor.Event{Kind: editor.PointerUp, Pos: p}))
	}
	return m, nil
}

// menuHit returns the shortcut of the context menu item at a cell.
func (m tuiModel) menuHit(col, row int) (string, bool) {
	menu, pos := m.ed.Menu()
	items := menuItems[menu]
	if len(items) == 0 {
		return "", false
	}
	mc, mr := m.cs.toCell(pos)
	i := row - mr - 1
	if i < 0 || i >= len(items) || col <= mc || col > mc+len([]rune(items[i])) {
		return "", false
	}
	return strings.Fields(items[i])[0], true
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.modal != "":
		m.modal = ""
		return m, nil
	case m.dialog != nil:
		return m.handleDialog(msg)
	case m.confirmClear:
		m.confirmClear = false
		if key == "y" || key == "Y" {
			if m.apply(m.ed.Clear(m.ctx)) {
				m.status = "Cleared"
			}
		}
		return m, nil
	}

	m.status = ""
	switch key {
	case "q":
		return m, tea.Quit
	case "a", "n":
		if m.refuseReadOnly() {
			return m, nil
		}
		m.dialog = newAddNodeDialog()
		return m, nil
	case "l":
		m.apply(m.ed.StartLink())
		if m.ed.Mode() == editor.ModeLinking {
			m.status = "Click the target node (esc cancels)"
		}
	case "x", "d", "delete":
		m.apply(m.ed.DeleteSelected(m.ctx))
	case "r":
		if m.apply(m.ed.ResetLayout(m.ctx)) {
			m.status = "Layout reset"
		}
	case "c":
		if m.refuseReadOnly() {
			return m, nil
		}
		m.confirmClear = true
	case "e":
		path, err := m.ed.Export(graph.DefaultExportName)
		if m.apply(err) {
			m.status = "Exported to " + path
		}
	case "i":
		if m.refuseReadOnly() {
			return m, nil
		}
		m.dialog = newImportDialog(graph.DefaultExportName)
	case "esc":
		m.apply(m.ed.Dispatch(m.ctx, editor.Event{Kind: editor.Key, Key: "esc"}))
	case "tab":
		m.selectNext()
	}
	return m, nil
}

// selectNext clicks the node after the selected one, wrapping around.
// While linking this completes the link to that node.
func (m *tuiModel) selectNext() {
	nodes := m.ed.Graph().Nodes()
	if len(nodes) == 0 {
		return
	}
	ref, ok := m.ed.Selected()
	if src, linking := m.ed.LinkSource(); linking {
		ref, ok = src, true
	}
	next := 0
	if ok {
		for i, n := range nodes {
			if n.ID == ref {
				next = (i + 1) % len(nodes)
				break
			}
		}
	}
	m.apply(m.ed.Dispatch(m.ctx, editor.Event{Kind: editor.Click, Pos: nodes[next].Pos()}))
}

func (m tuiModel) handleDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	submit, cancel, cmd := m.dialog.update(msg)
	switch {
	case cancel:
		m.dialog = nil
	case submit:
		var err error
		switch m.dialog.kind {
		case dialogAddNode:
			_, err = m.ed.AddNode(m.ctx, m.dialog.value(0), m.dialog.value(1))
		case dialogImport:
			err = m.ed.Import(m.ctx, strings.TrimSpace(m.dialog.value(0)))
			if err == nil {
				m.status = "Imported " + m.dialog.value(0)
			}
		}
		if err != nil {
			m.dialog.err = errors.UserMessage(err)
			return m, nil
		}
		m.dialog = nil
	}
	return m, cmd
}

func (m *tuiModel) refuseReadOnly() bool {
	if m.ed.ReadOnly() {
		m.status = "Read-only view"
		return true
	}
	return false
}

// apply reports err to the user and returns whether the action succeeded.
// Refusals go to the status line; anything else opens the error modal.
func (m *tuiModel) apply(err error) bool {
	if err == nil {
		return true
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeReadOnly, errors.ErrCodeNotFound, errors.ErrCodeInvalidInput:
		m.status = errors.UserMessage(err)
	default:
		m.logger.Error("action failed", "error", err)
		m.modal = errors.UserMessage(err)
	}
	return false
}

// =============================================================================
// View
// =============================================================================

func (m tuiModel) View() string {
	if m.cols == 0 || m.rows == 0 {
		return ""
	}
	scene := m.ed.Scene()
	rows := m.canvasRows()

	var body string
	switch {
	case m.modal != "":
		body = m.place(rows, modalStyle.Render(m.modal+"\n\n"+StyleDim.Render("press any key")))
	case m.dialog != nil:
		body = m.place(rows, m.dialog.view())
	case m.confirmClear:
		body = m.place(rows, confirmStyle.Render("Clear the whole board? [y/N]"))
	default:
		body = drawScene(scene, m.cs, m.cols, rows).String()
	}

	return strings.Join([]string{m.header(scene), body, m.footer(scene)}, "\n")
}

func (m tuiModel) place(rows int, s string) string {
	return lipgloss.Place(m.cols, rows, lipgloss.Center, lipgloss.Center, s)
}

func (m tuiModel) header(s editor.Scene) string {
	parts := []string{
		headerStyle.Render(appName),
		StyleDim.Render(s.Mode.String()),
		StyleDim.Render(fmt.Sprintf("%d nodes · %d links", len(s.Nodes), len(s.Links))),
	}
	if s.ReadOnly {
		parts = append(parts, badgeStyle.Render("read-only"))
	}
	if m.url != "" {
		parts = append(parts, m.spin.View()+StyleDim.Render(" fetching"))
	} else if m.ed.Active() {
		parts = append(parts, StyleDim.Render("~"))
	}
	return truncateStyled(strings.Join(parts, "  "), m.cols)
}

func (m tuiModel) footer(s editor.Scene) string {
	line := StyleDim.Render(m.status)
	if s.DetailsOpen {
		line = detailsStyle.Render(firstLine(s.Details))
	}
	help := "a add  l link  x delete  r reset  c clear  e export  i import  tab next  q quit"
	if s.ReadOnly {
		help = "tab next  e export  q quit"
	}
	return truncateStyled(line, m.cols) + "\n" + truncateStyled(StyleDim.Render(help), m.cols)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func truncateStyled(s string, w int) string {
	return lipgloss.NewStyle().MaxWidth(w).Render(s)
}
