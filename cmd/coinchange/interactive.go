package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/on-the-ground/coinchange/history"
	"github.com/on-the-ground/coinchange/solver"
)

// recentEntries is how many history lines the view shows.
const recentEntries = 5

type interactiveModel struct {
	err      error
	solver   *solver.Solver
	history  *history.Store
	result   *solver.Result
	recent   []history.Entry
	earlier  []history.Entry
	alg      solver.Algorithm
	inputs   []textinput.Model
	focusIdx int
}

type solvedMsg struct {
	err    error
	result solver.Result
}

func newInteractiveModel(s *solver.Solver, alg solver.Algorithm, store *history.Store) *interactiveModel {
	target := textinput.New()
	target.Prompt = "value: "
	target.Placeholder = "10"
	target.Width = 20
	target.Focus()

	denominations := textinput.New()
	denominations.Prompt = "coins: "
	denominations.Placeholder = "1 5 10"
	denominations.Width = 40

	return &interactiveModel{
		solver:  s,
		history: store,
		alg:     alg,
		inputs:  []textinput.Model{target, denominations},
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "enter":
			req, err := parseInputs(m.inputs[0].Value(), m.inputs[1].Value())
			if err != nil {
				m.err = err
				m.result = nil
				m.earlier = nil
				return m, nil
			}
			return m, m.solve(req)

		case "tab", "shift+tab":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			return m, m.inputs[m.focusIdx].Focus()

		case "esc":
			m.err = nil
			m.result = nil
			m.earlier = nil
			for i := range m.inputs {
				m.inputs[i].Reset()
			}
			return m, nil
		}

	case solvedMsg:
		m.err = msg.err
		if msg.err != nil {
			m.result = nil
			m.earlier = nil
			return m, nil
		}
		m.result = &msg.result
		if err := m.history.Record(history.FromResult(msg.result)); err != nil {
			m.err = err
		}
		m.refreshRecent()
		m.refreshEarlier(msg.result)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd
}

func (m *interactiveModel) solve(req solver.Request) tea.Cmd {
	alg := m.alg
	return func() tea.Msg {
		res, err := m.solver.Solve(context.Background(), alg, req)
		return solvedMsg{result: res, err: err}
	}
}

func (m *interactiveModel) refreshRecent() {
	all, err := m.history.All()
	if err != nil {
		m.err = err
		return
	}
	if len(all) > recentEntries {
		all = all[len(all)-recentEntries:]
	}
	m.recent = all
}

// refreshEarlier collects previous solves of the same problem as res.
func (m *interactiveModel) refreshEarlier(res solver.Result) {
	same, err := m.history.ByProblem(history.ProblemKey(res.Target, res.Coins.Key()))
	if err != nil {
		m.err = err
		return
	}
	m.earlier = m.earlier[:0]
	for _, e := range same {
		if e.ID != res.ID {
			m.earlier = append(m.earlier, e)
		}
	}
}

// parseInputs accepts coins separated by spaces or commas.
func parseInputs(targetText, coinsText string) (solver.Request, error) {
	target, err := strconv.Atoi(strings.TrimSpace(targetText))
	if err != nil {
		return solver.Request{}, fmt.Errorf("value: %w", err)
	}

	fields := strings.FieldsFunc(coinsText, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	raw := make([]int, len(fields))
	for i, f := range fields {
		if raw[i], err = strconv.Atoi(f); err != nil {
			return solver.Request{}, fmt.Errorf("coins: %w", err)
		}
	}
	return solver.Request{Target: target, Coins: raw}, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Coin Change"))
	b.WriteString(" ")
	b.WriteString(string(m.alg))
	b.WriteString("\n\n")

	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	case m.result != nil:
		if m.result.Table != nil {
			b.WriteString(styledTable(*m.result.Table))
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%d ways to make %d from %v\n\n",
			m.result.Count, m.result.Target, m.result.Coins))
		if len(m.earlier) > 0 {
			b.WriteString(helpStyle.Render("earlier for this problem"))
			b.WriteString("\n")
			for _, e := range m.earlier {
				b.WriteString(fmt.Sprintf("  %-10s %d\n", e.Algorithm, e.Count))
			}
			b.WriteString("\n")
		}
	}

	if len(m.recent) > 0 {
		b.WriteString(helpStyle.Render("recent"))
		b.WriteString("\n")
		for _, e := range m.recent {
			b.WriteString(fmt.Sprintf("  %-12s %-10s %d\n", e.Key, e.Algorithm, e.Count))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab next field • enter solve • esc clear • ctrl+c quit"))
	return b.String()
}

func runInteractive(s *solver.Solver, alg solver.Algorithm) error {
	store, err := history.New()
	if err != nil {
		return err
	}
	p := tea.NewProgram(newInteractiveModel(s, alg, store), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
