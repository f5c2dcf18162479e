package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/config"
	"github.com/rgehrsitz/mawc/internal/domain"
)

// Model is the calculator state. Every edit re-evaluates the claim
// synchronously, so the view always reflects the current inputs.
type Model struct {
	// Terminal dimensions
	width  int
	height int

	engine *calculation.CalculationEngine
	table  domain.RateTable

	claimPath string
	// base supplies everything the inputs do not edit: ledger, as_of, week mode.
	base domain.Claim

	inputs []textinput.Model
	focus  Field

	report  *domain.ClaimReport
	calcErr error
	err     error
}

// NewModel creates a calculator over table. When claimPath is non-empty the
// claim is loaded by Init and its values prefill the inputs.
func NewModel(engine *calculation.CalculationEngine, table domain.RateTable, claimPath string) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 14
		switch Field(i) {
		case FieldAWW:
			ti.Placeholder = "e.g., 1000.00"
			ti.CharLimit = 12
		case FieldDateOfInjury:
			ti.Placeholder = "YYYY-MM-DD"
			ti.CharLimit = 10
		case FieldEarningCapacity:
			ti.Placeholder = "optional"
			ti.CharLimit = 12
		}
		inputs[i] = ti
	}
	inputs[FieldAWW].Focus()

	m := Model{
		width:     80,
		height:    24,
		engine:    engine,
		table:     table,
		claimPath: claimPath,
		inputs:    inputs,
		focus:     FieldAWW,
	}
	m.recompute()
	return m
}

// Init starts the cursor blinking and loads the claim file if one was given.
func (m Model) Init() tea.Cmd {
	if m.claimPath == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, loadClaimCmd(m.claimPath))
}

// loadClaimCmd returns a command that loads a claim file.
func loadClaimCmd(path string) tea.Cmd {
	return func() tea.Msg {
		claim, err := config.NewInputParser().LoadClaim(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ClaimLoadedMsg{Path: path, Claim: claim}
	}
}

// SetClaim replaces the base claim and copies its inputs into the fields.
func (m *Model) SetClaim(claim *domain.Claim) {
	m.base = *claim
	m.inputs[FieldAWW].SetValue(claim.AWW.String())
	m.inputs[FieldDateOfInjury].SetValue("")
	if !claim.DateOfInjury.IsZero() {
		m.inputs[FieldDateOfInjury].SetValue(claim.DateOfInjury.String())
	}
	m.inputs[FieldEarningCapacity].SetValue("")
	if claim.EarningCapacity != nil {
		m.inputs[FieldEarningCapacity].SetValue(claim.EarningCapacity.String())
	}
	m.recompute()
}

// Report returns the last successful evaluation, or nil.
func (m Model) Report() *domain.ClaimReport { return m.report }

// CalculationError returns why the current inputs could not be evaluated.
func (m Model) CalculationError() error { return m.calcErr }

// Focused returns the field receiving key input.
func (m Model) Focused() Field { return m.focus }

// Value returns the raw text of field f.
func (m Model) Value(f Field) string { return m.inputs[f].Value() }

// claimFromInputs overlays the edited fields on the base claim.
func (m Model) claimFromInputs() (*domain.Claim, error) {
	claim := m.base

	raw := strings.TrimSpace(m.inputs[FieldAWW].Value())
	if raw == "" {
		return nil, fmt.Errorf("enter an average weekly wage")
	}
	aww, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("average weekly wage %q is not a number", raw)
	}
	claim.AWW = aww

	raw = strings.TrimSpace(m.inputs[FieldDateOfInjury].Value())
	if raw == "" {
		return nil, fmt.Errorf("enter a date of injury")
	}
	doi, err := domain.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	claim.DateOfInjury = doi

	claim.EarningCapacity = nil
	if raw = strings.TrimSpace(m.inputs[FieldEarningCapacity].Value()); raw != "" {
		ec, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("earning capacity %q is not a number", raw)
		}
		claim.EarningCapacity = &ec
	}

	return &claim, nil
}

func (m *Model) recompute() {
	claim, err := m.claimFromInputs()
	if err == nil {
		m.report, err = m.engine.Evaluate(claim, m.table)
	}
	if err != nil {
		m.report = nil
	}
	m.calcErr = err
}

// setFocus moves focus to f, wrapping around the field list.
func (m *Model) setFocus(f Field) tea.Cmd {
	f = (f + fieldCount) % fieldCount
	m.inputs[m.focus].Blur()
	m.focus = f
	return m.inputs[f].Focus()
}
