package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordchain/internal/game"
	"github.com/robalobadob/wordchain/internal/hint"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateChecking
	stateDone
)

// lookupTimeout bounds one link check or hint request.
const lookupTimeout = 15 * time.Second

type model struct {
	state     sessionState
	game      *game.Game
	v         *game.Validator
	hints     *hint.Engine
	textInput textinput.Model
	spinner   spinner.Model
	status    string
	statusBad bool
	width     int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	hubStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8787"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D787"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	scoreStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))
)

// NewModel builds the play screen for g. hints may be nil.
func NewModel(g *game.Game, v *game.Validator, hints *hint.Engine) model {
	ti := textinput.New()
	ti.Placeholder = "Next word..."
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		state:     statePlaying,
		game:      g,
		v:         v,
		hints:     hints,
		textInput: ti,
		spinner:   sp,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type linkCheckedMsg struct {
	res game.Result
}

type hintMsg struct {
	hint hint.Hint
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateDone {
				return m, tea.Quit
			}
			if m.state == stateChecking {
				return m, nil
			}
			word := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()

			switch word {
			case "/quit":
				return m, tea.Quit
			case "/giveup":
				m.game.GiveUp()
				m.state = stateDone
				m.setStatus(fmt.Sprintf("You gave up. The target was %q.", m.game.Target), true)
				return m, nil
			case "/hint":
				if m.hints == nil {
					m.setStatus("Hints are not configured (set GEMINI_API_KEY).", true)
					return m, nil
				}
				m.state = stateChecking
				return m, tea.Batch(m.spinner.Tick, m.askHint())
			}

			m.state = stateChecking
			return m, tea.Batch(m.spinner.Tick, m.check(word))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		if m.state == stateChecking {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case linkCheckedMsg:
		m.state = statePlaying
		if err := m.game.Apply(msg.res); err != nil {
			m.state = stateDone
			return m, nil
		}
		if msg.res.OK() {
			a := msg.res.Accepted
			line := fmt.Sprintf("%s: %s %s", a.Label, a.Word, stars(a.Stars))
			if a.IsHub {
				line += " (hub word, +1 step)"
			}
			m.setStatus(line, false)
		} else {
			m.setStatus(msg.res.Rejected.Message, true)
		}
		if m.game.Finished {
			m.state = stateDone
		}
		return m, nil

	case hintMsg:
		m.state = statePlaying
		if msg.err != nil {
			m.setStatus("No hint available right now.", true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Try %q (%s)", msg.hint.Word, msg.hint.Accept.Label), false)
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) setStatus(s string, bad bool) {
	m.status, m.statusBad = s, bad
}

func (m model) View() string {
	g := m.game
	var b strings.Builder

	b.WriteString(titleStyle.Render("WORDCHAIN") + "\n\n")
	b.WriteString(wordStyle.Render(g.Start) + labelStyle.Render("  →  ") + wordStyle.Render(g.Target) + "\n\n")
	b.WriteString(m.renderChain())

	if m.status != "" {
		st := okStyle
		if m.statusBad {
			st = badStyle
		}
		b.WriteString("\n" + st.Render(m.status) + "\n")
	}

	b.WriteString("\n")
	switch m.state {
	case statePlaying:
		b.WriteString(m.textInput.View() + "\n\n")
		b.WriteString(helpStyle.Render("Commands: /hint, /giveup, /quit"))
	case stateChecking:
		b.WriteString(m.spinner.View() + " checking...")
	case stateDone:
		b.WriteString(m.renderSummary() + "\n\n")
		b.WriteString(helpStyle.Render("Press Enter to exit."))
	}

	main := b.String()
	side := scoreStyle.Render(m.renderScore())
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, main, "   ", side) + "\n"
}

func (m model) renderChain() string {
	g := m.game
	if len(g.Chain) == 0 {
		return labelStyle.Render("(no links yet)") + "\n"
	}
	var b strings.Builder
	for i, l := range g.Chain {
		line := fmt.Sprintf("%2d. %s → %s  %s  %s",
			i+1, l.From, wordStyle.Render(l.Word), labelStyle.Render(l.Label), starStyle.Render(stars(l.Stars)))
		if l.IsHub {
			line += hubStyle.Render("  hub +1")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m model) renderScore() string {
	g := m.game
	sc := g.Score()
	return fmt.Sprintf("Links  %d/%d\nHubs   %d\nStars  %d\nMisses %d\nScore  %.1f",
		len(g.Chain), g.MaxLinks, g.HubPenalties, g.TotalStars, g.Failures, sc.Final)
}

func (m model) renderSummary() string {
	g := m.game
	if !g.Won {
		return badStyle.Render(fmt.Sprintf("Game over after %d links.", len(g.Chain)))
	}
	s := okStyle.Render(fmt.Sprintf("Solved in %d links! Final score %.1f", len(g.Chain), g.Score().Final))
	if best, ok := game.MostCreativeLink(g.Chain); ok {
		s += "\n" + labelStyle.Render("Most creative: ") + fmt.Sprintf("%s → %s %s", best.From, best.Word, starStyle.Render(stars(best.Stars)))
	}
	return s
}

// stars renders n of three stars.
func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 3 {
		n = 3
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// check validates word off the update loop. The game is only mutated when the result arrives.
func (m model) check(word string) tea.Cmd {
	prev, used, v := m.game.LastWord(), m.game.Used(), m.v
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		return linkCheckedMsg{res: v.ValidateLink(ctx, prev, word, used)}
	}
}

func (m model) askHint() tea.Cmd {
	g, hints := m.game, m.hints
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		h, err := hints.For(ctx, g)
		return hintMsg{hint: h, err: err}
	}
}

// Run plays g in the terminal until the player quits.
func Run(ctx context.Context, g *game.Game, v *game.Validator, hints *hint.Engine) error {
	p := tea.NewProgram(NewModel(g, v, hints), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
