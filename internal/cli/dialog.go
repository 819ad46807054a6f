package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forcechart/pkg/errors"
)

// dialogKind identifies what a submitted dialog does.
type dialogKind int

const (
	dialogAddNode dialogKind = iota
	dialogImport
)

var (
	dialogBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorCyan).Padding(0, 1)
	dialogLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
	dialogErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// dialog is a small form of text inputs shown over the canvas.
type dialog struct {
	kind   dialogKind
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
}

func newAddNodeDialog() *dialog {
	return newDialog(dialogAddNode, "Add node",
		[]string{"Name", "Details"},
		[]string{"Start", "No details provided."},
		[]int{errors.MaxLabelLength, errors.MaxDetailsLength})
}

func newImportDialog(defaultPath string) *dialog {
	d := newDialog(dialogImport, "Import board", []string{"File"}, []string{defaultPath}, []int{4096})
	d.inputs[0].SetValue(defaultPath)
	d.inputs[0].CursorEnd()
	return d
}

func newDialog(kind dialogKind, title string, labels, placeholders []string, limits []int) *dialog {
	d := &dialog{kind: kind, title: title, labels: labels}
	for i := range labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		d.inputs = append(d.inputs, ti)
	}
	d.inputs[0].Focus()
	return d
}

// update feeds a key to the dialog. Enter on the last field submits; esc
// cancels.
func (d *dialog) update(msg tea.KeyMsg) (submit, cancel bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return false, true, nil
	case "tab", "down":
		d.setFocus(d.focus + 1)
		return false, false, nil
	case "shift+tab", "up":
		d.setFocus(d.focus - 1)
		return false, false, nil
	case "enter":
		if d.focus < len(d.inputs)-1 {
			d.setFocus(d.focus + 1)
			return false, false, nil
		}
		return true, false, nil
	}
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	return false, false, cmd
}

func (d *dialog) setFocus(i int) {
	n := len(d.inputs)
	d.inputs[d.focus].Blur()
	d.focus = ((i % n) + n) % n
	d.inputs[d.focus].Focus()
}

// value returns the text of field i.
func (d *dialog) value(i int) string {
	return d.inputs[i].Value()
}

func (d *dialog) view() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(d.title))
	b.WriteString("\n\n")
	for i, in := range d.inputs {
		b.WriteString(dialogLabelStyle.Render(d.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if d.err != "" {
		b.WriteString("\n")
		b.WriteString(dialogErrorStyle.Render(d.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("enter: next/confirm  tab: switch  esc: cancel"))
	return dialogBoxStyle.Render(b.String())
}
