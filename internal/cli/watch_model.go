package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wayfarerhq/wayfarer/internal/cli/formatter"
	"github.com/wayfarerhq/wayfarer/internal/domain"
	"github.com/wayfarerhq/wayfarer/internal/engine"
)

// tickMsg advances the simulated clock.
type tickMsg time.Time

// watchKeyMap binds the dashboard keys.
type watchKeyMap struct {
	Quit     key.Binding
	Pause    key.Binding
	CheckIn  key.Binding
	CheckOut key.Binding
	Skip     key.Binding
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Pause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		CheckIn:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "check in")),
		CheckOut: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "check out")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
	}
}

// watchModel is the live dashboard: a session driven by a simulated clock
// that advances a fixed number of minutes per real second.
type watchModel struct {
	session *engine.Session
	keys    watchKeyMap

	clock      time.Time
	minPerTick int

	log   *[]engine.Event
	logVP viewport.Model
	width int

	quitting bool
}

func newWatchModel(sess *engine.Session, start time.Time, minPerTick int) watchModel {
	log := &[]engine.Event{}
	sess.Bus().Subscribe(func(ev engine.Event) {
		*log = append(*log, ev)
	})

	vp := viewport.New(0, 8)

	return watchModel{
		session:    sess,
		keys:       newWatchKeyMap(),
		clock:      start,
		minPerTick: minPerTick,
		log:        log,
		logVP:      vp,
	}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.logVP.Width = msg.Width

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.clock = m.clock.Add(time.Duration(m.minPerTick) * time.Minute)
		m.advance()
		m.refreshLog()
		return m, watchTick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.session.Stop(m.clock)
			return m, tea.Quit

		case key.Matches(msg, m.keys.Pause):
			if m.session.Mode() == domain.ModePaused {
				m.session.Resume(m.clock)
			} else {
				m.session.Pause(m.clock)
			}

		case key.Matches(msg, m.keys.CheckIn):
			if next := m.session.Snapshot(m.clock).Next; next != nil {
				_ = m.session.CheckIn(next.SlotID, m.clock)
			}

		case key.Matches(msg, m.keys.CheckOut):
			if cur := m.session.Snapshot(m.clock).Current; cur != nil {
				_ = m.session.CheckOut(cur.SlotID, 0, "", m.clock)
			}

		case key.Matches(msg, m.keys.Skip):
			if next := m.session.Snapshot(m.clock).Next; next != nil {
				_ = m.session.Skip(next.SlotID, "skipped from dashboard", m.clock)
			}
		}
		m.refreshLog()

	default:
		var cmd tea.Cmd
		m.logVP, cmd = m.logVP.Update(msg)
		return m, cmd
	}

	return m, nil
}

// advance runs one clock step: the session's own auto transitions, then a
// checkout for any activity whose window has closed. A traveler watching the
// dashboard would have left by then.
func (m *watchModel) advance() {
	m.session.Tick(m.clock)

	nowMin := domain.MinutesOfDay(m.clock)
	for _, v := range m.session.Views() {
		if v.State.IsActive() && nowMin >= v.EndMin {
			_ = m.session.CheckOut(v.SlotID, 0, "", m.clock)
		}
	}
}

func (m *watchModel) refreshLog() {
	var b strings.Builder
	for _, ev := range *m.log {
		b.WriteString(formatter.StyleDim.Render(fmt.Sprintf("[%s] ", domain.FormatClock(domain.MinutesOfDay(ev.At)))))
		b.WriteString(string(ev.Type))
		if ev.SlotID != "" {
			b.WriteString(formatter.StyleDim.Render("  " + ev.SlotID))
		}
		b.WriteString("\n")
	}
	m.logVP.SetContent(b.String())
	m.logVP.GotoBottom()
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.StyleDim.Render(fmt.Sprintf("  %s (simulated, %d min/s)\n\n", m.clock.Format("15:04"), m.minPerTick)))
	b.WriteString(formatter.FormatSnapshot(m.session.Snapshot(m.clock), m.session.Views()))
	b.WriteString("\n")
	b.WriteString(formatter.StyleBold.Render("  Events"))
	b.WriteString("\n")
	b.WriteString(m.logVP.View())
	b.WriteString("\n")
	b.WriteString(formatter.StyleDim.Render("  space pause · i check in · o check out · s skip · q quit"))
	b.WriteString("\n")
	return b.String()
}
