package bubbletea

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studybuddy"
)

// Form field order.
const (
	fieldSubject = iota
	fieldTopic
	fieldDuration
	fieldPriority
	fieldDueDate
	fieldResources
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldSubject:   "Subject",
	fieldTopic:     "Topic",
	fieldDuration:  "Duration (hours)",
	fieldPriority:  "Priority (urgent/high/medium/low)",
	fieldDueDate:   "Due date (YYYY-MM-DD)",
	fieldResources: "Resources (comma-separated)",
	fieldNotes:     "Notes / goals (markdown)",
}

// form collects session fields as raw text. An empty id means a new session.
type form struct {
	id     string
	inputs [fieldCount]textinput.Model
	focus  int
}

// newForm returns a form for a new session due tomorrow.
func newForm(today time.Time) form {
	f := emptyForm()
	f.inputs[fieldDuration].SetValue("1")
	f.inputs[fieldPriority].SetValue(string(studybuddy.PriorityMedium))
	f.inputs[fieldDueDate].SetValue(studybuddy.DateOf(today).AddDate(0, 0, 1).Format(studybuddy.DateLayout))
	return f
}

// editForm returns a form prefilled from sess.
func editForm(sess studybuddy.Session) form {
	f := emptyForm()
	f.id = sess.ID
	f.inputs[fieldSubject].SetValue(sess.Subject)
	f.inputs[fieldTopic].SetValue(sess.Topic)
	f.inputs[fieldDuration].SetValue(strconv.FormatFloat(sess.DurationHours, 'f', -1, 64))
	f.inputs[fieldPriority].SetValue(string(sess.Priority))
	f.inputs[fieldDueDate].SetValue(sess.DueDate.Format(studybuddy.DateLayout))
	f.inputs[fieldResources].SetValue(strings.Join(sess.Resources, ", "))
	f.inputs[fieldNotes].SetValue(sess.Notes)
	return f
}

func emptyForm() form {
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 0
		inputs[i] = ti
	}
	inputs[fieldSubject].Placeholder = "e.g. Data Structures"
	inputs[fieldResources].Placeholder = "Textbook Ch. 5, Lecture slides"
	inputs[fieldSubject].Focus()
	return form{inputs: inputs}
}

func (f form) editing() bool { return f.id != "" }

func (f form) raw() studybuddy.RawFields {
	return studybuddy.RawFields{
		Subject:   f.inputs[fieldSubject].Value(),
		Topic:     f.inputs[fieldTopic].Value(),
		Duration:  f.inputs[fieldDuration].Value(),
		Priority:  f.inputs[fieldPriority].Value(),
		DueDate:   f.inputs[fieldDueDate].Value(),
		Resources: f.inputs[fieldResources].Value(),
		Notes:     f.inputs[fieldNotes].Value(),
	}
}

// move shifts focus by delta, wrapping around.
func (f form) move(delta int) (form, tea.Cmd) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	cmd := f.inputs[f.focus].Focus()
	return f, cmd
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			return f.move(1)
		case tea.KeyShiftTab, tea.KeyUp:
			return f.move(-1)
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) view(s Styles, width int) string {
	var b strings.Builder
	title := "Add study session"
	if f.editing() {
		title = "Edit study session"
	}
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := s.Label
		if i == f.focus {
			label = s.Accent
		}
		in.Width = max(width-4, 10)
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
