package bubbletea

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studybuddy"
	"github.com/fwojciec/studybuddy/goldmark"
)

var _ tea.Model = Model{}

// noticeTTL is how long a notification stays in the status line.
const noticeTTL = 3 * time.Second

// headerHeight is the number of lines above the body: title, stats,
// progress bar, filters and a blank separator.
const headerHeight = 5

// footerHeight is the status line plus the help line.
const footerHeight = 2

type mode int

const (
	modeList mode = iota
	modeDetail
	modeForm
	modeConfirm
)

type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmClearCompleted
	confirmClearAll
)

var confirmPrompts = map[confirmKind]string{
	confirmDelete:         "Are you sure you want to delete this study session?",
	confirmClearCompleted: "Clear all completed study sessions?",
	confirmClearAll:       "Are you sure you want to delete ALL study sessions? This cannot be undone.",
}

type confirmation struct {
	kind confirmKind
	id   string
	back mode
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the time source used for relative due dates and overdue
// ordering.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// Model is the Bubble Tea model for the studybuddy TUI. It renders the
// filtered and sorted view of a Store and applies user actions to it.
type Model struct {
	// Viewport scrolls the detail view. Exported for test access.
	Viewport viewport.Model

	store  *studybuddy.Store
	now    func() time.Time
	theme  studybuddy.Theme
	styles Styles
	keys   KeyMap
	help   help.Model

	mode     mode
	filter   studybuddy.Filter
	visible  []studybuddy.Session
	cursor   int
	offset   int
	detailID string
	form     form
	formBack mode
	confirm  confirmation

	notice    string
	noticeSeq int
	err       error

	width  int
	height int
	ready  bool
}

// New creates a TUI Model over store.
func New(store *studybuddy.Store, theme studybuddy.Theme, opts ...Option) Model {
	m := Model{
		store:  store,
		now:    time.Now,
		theme:  theme,
		styles: NewStyles(theme),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m.refresh()
}

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Notice returns the current notification, if any.
func (m Model) Notice() string { return m.notice }

// Filter returns the active filter.
func (m Model) Filter() studybuddy.Filter { return m.filter }

// Visible returns the sessions currently listed, in display order.
func (m Model) Visible() []studybuddy.Session { return m.visible }

// Selected returns the session under the cursor.
func (m Model) Selected() (studybuddy.Session, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return studybuddy.Session{}, false
	}
	return m.visible[m.cursor], true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.handleFormKey(msg)
		case modeConfirm:
			return m.handleConfirmKey(msg)
		case modeDetail:
			return m.handleDetailKey(msg)
		}
		return m.handleListKey(msg)
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	if m.mode == modeDetail {
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.view(m.styles, m.width))
	case modeDetail:
		b.WriteString(m.Viewport.View())
	case modeConfirm:
		if m.confirm.back == modeDetail {
			b.WriteString(m.Viewport.View())
		} else {
			b.WriteString(m.listView())
		}
	default:
		b.WriteString(m.listView())
	}
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	vpHeight := max(msg.Height-headerHeight-footerHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	if m.detailID != "" {
		m.Viewport.SetContent(m.detailContent())
	}
	return m.scroll()
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m.scroll(), nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m.scroll(), nil
	case key.Matches(msg, m.keys.Open):
		if sess, ok := m.Selected(); ok {
			return m.openDetail(sess.ID), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.form = newForm(m.now())
		m.formBack = modeList
		m.mode = modeForm
		m.err = nil
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Status):
		m.filter.Status = nextStatus(m.filter.Status)
		m.cursor = 0
		return m.refresh(), nil
	case key.Matches(msg, m.keys.Priority):
		m.filter.Priority = nextPriority(m.filter.Priority)
		m.cursor = 0
		return m.refresh(), nil
	case key.Matches(msg, m.keys.Clear):
		return m.ask(confirmClearCompleted, ""), nil
	case key.Matches(msg, m.keys.ClearAll):
		return m.ask(confirmClearAll, ""), nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	sess, ok := m.Selected()
	if !ok {
		return m, nil
	}
	return m.handleSessionKey(msg, sess.ID)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.mode = modeList
		m.detailID = ""
		return m, nil
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}
	return m.handleSessionKey(msg, m.detailID)
}

// handleSessionKey applies actions that target a single session.
func (m Model) handleSessionKey(msg tea.KeyMsg, id string) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		sess, err := m.store.Get(id)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.form = editForm(sess)
		m.formBack = m.mode
		m.mode = modeForm
		m.err = nil
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		return m.ask(confirmDelete, id), nil
	case key.Matches(msg, m.keys.Toggle):
		sess, err := m.store.Get(id)
		if err != nil {
			m.err = err
			return m, nil
		}
		next := studybuddy.StatusCompleted
		if sess.Status == studybuddy.StatusCompleted {
			next = studybuddy.StatusPending
		}
		return m.setStatus(id, next)
	case key.Matches(msg, m.keys.Start):
		return m.setStatus(id, studybuddy.StatusInProgress)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = m.formBack
		m.err = nil
		return m, nil
	case tea.KeyEnter:
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	fields, err := studybuddy.ParseFields(m.form.raw())
	if err != nil {
		m.err = err
		return m, nil
	}

	var notice string
	if m.form.editing() {
		_, err = m.store.Update(m.form.id, fields)
		notice = "Session updated!"
	} else {
		_, err = m.store.Add(fields)
		notice = "Study session added successfully!"
	}
	m.mode = m.formBack
	m = m.refresh()
	if err != nil {
		m.err = err
		return m, nil
	}
	return m.notify(notice)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
	case "n", "N", "esc", "q":
		m.mode = m.confirm.back
		return m, nil
	default:
		return m, nil
	}

	var (
		notice string
		err    error
	)
	m.mode = m.confirm.back
	switch m.confirm.kind {
	case confirmDelete:
		err = m.store.Delete(m.confirm.id)
		notice = "Session deleted!"
	case confirmClearCompleted:
		var n int
		n, err = m.store.ClearCompleted()
		notice = fmt.Sprintf("Completed sessions cleared! (%d)", n)
	case confirmClearAll:
		err = m.store.ClearAll()
		notice = "All sessions cleared!"
	}
	m = m.refresh()
	if err != nil {
		m.err = err
		return m, nil
	}
	return m.notify(notice)
}

func (m Model) ask(kind confirmKind, id string) Model {
	m.confirm = confirmation{kind: kind, id: id, back: m.mode}
	m.mode = modeConfirm
	m.err = nil
	return m
}

func (m Model) setStatus(id string, status studybuddy.Status) (tea.Model, tea.Cmd) {
	_, err := m.store.UpdateStatus(id, status)
	m = m.refresh()
	if err != nil {
		m.err = err
		return m, nil
	}
	return m.notify(fmt.Sprintf("Session marked as %s!", status))
}

func (m Model) openDetail(id string) Model {
	m.detailID = id
	m.mode = modeDetail
	m.err = nil
	m.Viewport.SetContent(m.detailContent())
	m.Viewport.GotoTop()
	return m
}

// notify shows a transient message and schedules its removal.
func (m Model) notify(msg string) (Model, tea.Cmd) {
	m.err = nil
	m.notice = msg
	m.noticeSeq++
	seq := m.noticeSeq
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// refresh re-derives the visible list from the store and keeps the cursor
// and detail view consistent with it.
func (m Model) refresh() Model {
	m.visible = studybuddy.View(m.store.All(), m.filter, m.now())
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
	if m.detailID != "" {
		if _, err := m.store.Get(m.detailID); err != nil {
			m.detailID = ""
			if m.mode == modeDetail {
				m.mode = modeList
			}
		} else if m.ready {
			m.Viewport.SetContent(m.detailContent())
		}
	}
	return m.scroll()
}

// scroll keeps the cursor inside the visible window of list rows.
func (m Model) scroll() Model {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(min(m.offset, len(m.visible)-rows), 0)
	return m
}

func (m Model) listRows() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m Model) header() string {
	st := studybuddy.ComputeStats(m.store.All())
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("StudyBuddy"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total %d · Completed %d · In progress %d · Pending %d · %s planned",
		st.Total, st.Completed, st.InProgress, st.Pending, Hours(st.TotalHours))
	b.WriteString("\n")
	barWidth := max(min(m.width-6, 40), 10)
	b.WriteString(m.styles.progressBar(st.Progress(), barWidth))
	fmt.Fprintf(&b, " %d%%", st.CompletionRate)
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Status: %s · Priority: %s",
		filterLabel(string(m.filter.Status)), filterLabel(string(m.filter.Priority)))))
	return b.String()
}

func (m Model) listView() string {
	if len(m.visible) == 0 {
		return m.styles.Muted.Render("No study sessions found")
	}

	today := studybuddy.DateOf(m.now())
	cols := columnWidths(m.width)
	end := min(m.offset+m.listRows(), len(m.visible))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.row(m.visible[i], i == m.cursor, today, cols))
	}
	return strings.Join(lines, "\n")
}

type columns struct {
	subject, topic, hours, priority, due, status int
}

func columnWidths(width int) columns {
	c := columns{hours: 6, priority: 8, due: 22, status: 11}
	rest := width - 2 - c.hours - c.priority - c.due - c.status - 5
	c.subject = max(rest*3/5, 8)
	c.topic = max(rest-c.subject, 0)
	return c
}

func (m Model) row(sess studybuddy.Session, selected bool, today time.Time, c columns) string {
	marker := "  "
	subject := Cell(sess.Subject, c.subject)
	if selected {
		marker = m.styles.Selected.Render("▸ ")
		subject = m.styles.Selected.Render(subject)
	}
	due := Cell(DueLabel(sess, today), c.due)
	if sess.Overdue(today) {
		due = m.styles.Overdue.Render(due)
	}
	parts := []string{
		marker + subject,
		m.styles.Muted.Render(Cell(sess.Topic, c.topic)),
		Cell(Hours(sess.DurationHours), c.hours),
		m.styles.Priority(sess.Priority).Render(Cell(string(sess.Priority), c.priority)),
		due,
		m.styles.Status(sess.Status).Render(Cell(string(sess.Status), c.status)),
	}
	if c.topic == 0 {
		parts = append(parts[:1], parts[2:]...)
	}
	return strings.Join(parts, " ")
}

func (m Model) detailContent() string {
	sess, err := m.store.Get(m.detailID)
	if err != nil {
		return ""
	}
	today := studybuddy.DateOf(m.now())
	label := m.styles.Label.Render

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(sess.Subject))
	b.WriteString("\n\n")
	if sess.Topic != "" {
		fmt.Fprintf(&b, "%s %s\n", label("Topic:"), sess.Topic)
	}
	fmt.Fprintf(&b, "%s %s\n", label("Duration:"), Hours(sess.DurationHours))
	fmt.Fprintf(&b, "%s %s\n", label("Priority:"), m.styles.Priority(sess.Priority).Render(string(sess.Priority)))
	due := sess.DueDate.Format("Jan 2, 2006")
	if sess.Overdue(today) {
		due = m.styles.Overdue.Render(due + " (Overdue!)")
	}
	fmt.Fprintf(&b, "%s %s\n", label("Due date:"), due)
	fmt.Fprintf(&b, "%s %s\n", label("Status:"), m.styles.Status(sess.Status).Render(string(sess.Status)))
	if len(sess.Resources) > 0 {
		b.WriteString("\n" + label("Resources:") + "\n")
		for _, r := range sess.Resources {
			b.WriteString("  • " + r + "\n")
		}
	}
	if sess.Notes != "" {
		b.WriteString("\n" + label("Notes / goals:") + "\n")
		b.WriteString(goldmark.Render(sess.Notes, max(m.width-2, 20), m.theme))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Created: " + sess.CreatedAt.Format("Jan 2, 2006")))
	if sess.CompletedAt != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Completed: " + sess.CompletedAt.Format("Jan 2, 2006")))
	}
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.err != nil:
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	case m.mode == modeConfirm:
		return m.styles.Overdue.Render(confirmPrompts[m.confirm.kind] + " (y/n)")
	case m.notice != "":
		return m.styles.Notice.Render(m.notice)
	}
	return ""
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeForm:
		return m.styles.Muted.Render("enter save · tab next field · shift+tab previous · esc cancel")
	case modeConfirm:
		return m.styles.Muted.Render("y confirm · n cancel")
	case modeDetail:
		k := m.keys
		return m.help.ShortHelpView([]key.Binding{k.Back, k.Edit, k.Toggle, k.Start, k.Delete})
	}
	return m.help.View(m.keys)
}

func filterLabel(v string) string {
	if v == "" {
		return studybuddy.FilterAll
	}
	return v
}

// nextStatus cycles all → pending → in-progress → completed → all.
func nextStatus(s studybuddy.Status) studybuddy.Status {
	all := studybuddy.Statuses
	for i, v := range all {
		if v == s {
			if i == len(all)-1 {
				return ""
			}
			return all[i+1]
		}
	}
	return all[0]
}

// nextPriority cycles all → urgent → high → medium → low → all.
func nextPriority(p studybuddy.Priority) studybuddy.Priority {
	all := studybuddy.Priorities
	for i, v := range all {
		if v == p {
			if i == len(all)-1 {
				return ""
			}
			return all[i+1]
		}
	}
	return all[0]
}
