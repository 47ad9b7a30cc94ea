package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldExpected
	fieldCount
)

type formResult int

const (
	formContinue formResult = iota
	formSubmit
	formCancel
)

const (
	titleCharLimit = 200
	textareaHeight = 3
)

// form is the creation form: a required single-line title and two
// optional multi-line fields.
type form struct {
	title       textinput.Model
	description textarea.Model
	expected    textarea.Model
	focus       formField
	keys        formKeyMap
}

func newForm() form {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "What are you testing?"
	title.CharLimit = titleCharLimit

	return form{
		title:       title,
		description: newTextarea("Steps to reproduce (optional)"),
		expected:    newTextarea("What should happen (optional)"),
		keys:        defaultFormKeyMap(),
	}
}

func newTextarea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(textareaHeight)
	return ta
}

// open focuses the title field.
func (f *form) open() tea.Cmd {
	return f.focusField(fieldTitle)
}

func (f *form) focusField(field formField) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.expected.Blur()
	switch field {
	case fieldDescription:
		return f.description.Focus()
	case fieldExpected:
		return f.expected.Focus()
	default:
		return f.title.Focus()
	}
}

// reset clears every field and returns focus to the title.
func (f *form) reset() {
	f.title.Reset()
	f.description.Reset()
	f.expected.Reset()
	f.focus = fieldTitle
	f.title.Blur()
	f.description.Blur()
	f.expected.Blur()
}

func (f *form) setWidth(w int) {
	if w < 10 {
		w = 10
	}
	f.title.Width = w
	f.description.SetWidth(w)
	f.expected.SetWidth(w)
}

func (f *form) values() (title, description, expected string) {
	return f.title.Value(), f.description.Value(), f.expected.Value()
}

// update handles a message while the form is open. Navigation and
// submit/cancel keys are consumed here; everything else goes to the
// focused field.
func (f *form) update(msg tea.Msg) (formResult, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, f.keys.Cancel):
			return formCancel, nil
		case key.Matches(km, f.keys.Submit):
			return formSubmit, nil
		case km.Type == tea.KeyEnter && f.focus == fieldTitle:
			return formSubmit, nil
		case key.Matches(km, f.keys.Next):
			return formContinue, f.focusField((f.focus + 1) % fieldCount)
		case key.Matches(km, f.keys.Prev):
			return formContinue, f.focusField((f.focus + fieldCount - 1) % fieldCount)
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldExpected:
		f.expected, cmd = f.expected.Update(msg)
	default:
		f.title, cmd = f.title.Update(msg)
	}
	return formContinue, cmd
}

func (f *form) view(theme *CompiledTheme) string {
	label := func(field formField, text string) string {
		if f.focus == field {
			return theme.FocusedLabelStyle.Render(theme.Icons.Select + " " + text)
		}
		return theme.LabelStyle.Render("  " + text)
	}
	var sb strings.Builder
	sb.WriteString(theme.DetailHeaderStyle.Render("New test"))
	sb.WriteString("\n\n")
	sb.WriteString(label(fieldTitle, "Title (required)"))
	sb.WriteString("\n")
	sb.WriteString(f.title.View())
	sb.WriteString("\n\n")
	sb.WriteString(label(fieldDescription, "Description"))
	sb.WriteString("\n")
	sb.WriteString(f.description.View())
	sb.WriteString("\n\n")
	sb.WriteString(label(fieldExpected, "Expected result"))
	sb.WriteString("\n")
	sb.WriteString(f.expected.View())
	return theme.FormBoxStyle.Render(sb.String())
}
