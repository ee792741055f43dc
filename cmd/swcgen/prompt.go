package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// question is one field of an interactive form. Suggest and Validate see
// the answers given so far, keyed by question Key.
type question struct {
	Key      string
	Prompt   string
	Suggest  func(answers map[string]string) []string
	Validate func(answer string, answers map[string]string) error
}

// promptModel walks a form with a single text input. An answer that fails
// validation keeps the form on the same question.
type promptModel struct {
	questions []question
	idx       int
	input     textinput.Model
	answers   map[string]string
	err       error
	done      bool
}

func newPromptModel(questions []question) promptModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.ShowSuggestions = true
	m := promptModel{
		questions: questions,
		input:     ti,
		answers:   make(map[string]string, len(questions)),
	}
	m.ask()
	m.input.Focus()
	return m
}

// ask resets the input for the current question.
func (m *promptModel) ask() {
	if m.idx >= len(m.questions) {
		return
	}
	q := m.questions[m.idx]
	m.input.Reset()
	m.input.Placeholder = q.Prompt
	var suggestions []string
	if q.Suggest != nil {
		suggestions = q.Suggest(m.answers)
	}
	m.input.SetSuggestions(suggestions)
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) submit() (tea.Model, tea.Cmd) {
	q := m.questions[m.idx]
	answer := strings.TrimSpace(m.input.Value())
	if q.Validate != nil {
		if err := q.Validate(answer, m.answers); err != nil {
			m.err = err
			return m, nil
		}
	}
	m.err = nil
	m.answers[q.Key] = answer
	m.idx++
	if m.idx == len(m.questions) {
		m.done = true
		return m, tea.Quit
	}
	m.ask()
	return m, textinput.Blink
}

func (m promptModel) View() string {
	if m.done || m.idx >= len(m.questions) {
		return ""
	}
	var b strings.Builder
	for _, q := range m.questions[:m.idx] {
		fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(q.Prompt+":"), m.answers[q.Key])
	}
	q := m.questions[m.idx]
	fmt.Fprintf(&b, "%s (%d/%d): %s\n", q.Prompt, m.idx+1, len(m.questions), m.input.View())
	if m.err != nil {
		fmt.Fprintln(&b, errorStyle.Render(m.err.Error()))
	}
	fmt.Fprintln(&b, dimStyle.Render("tab completes, enter confirms, esc cancels"))
	return b.String()
}

// promptQuestions runs the form and returns the answers keyed by
// question.Key.
func promptQuestions(questions []question) (map[string]string, error) {
	if len(questions) == 0 {
		return map[string]string{}, nil
	}
	result, err := tea.NewProgram(newPromptModel(questions)).Run()
	if err != nil {
		return nil, err
	}
	final, ok := result.(promptModel)
	if !ok || !final.done {
		return nil, fmt.Errorf("prompt cancelled")
	}
	return final.answers, nil
}
