package keys

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTypeRadio = iota
	fieldTypeNumeric
)

// chunkBytes is the key-size granularity of the AES Key Wrap algorithm.
const chunkBytes = 8

type option struct {
	value       string
	description string
}

type fieldConfig struct {
	name         string
	description  string
	fieldType    int
	options      []option // For radio fields.
	selected     int      // For radio fields.
	numericValue string   // For numeric fields.
	minValue     int      // For numeric fields.
	maxValue     int      // For numeric fields.
	digits       int      // For numeric fields (zero-padding).
}

// wrapParams holds the sizes chosen in the wizard.
type wrapParams struct {
	kekBits   int
	keyChunks int
}

func (p wrapParams) kekBytes() int {
	return p.kekBits / 8
}

func (p wrapParams) keyBytes() int {
	return p.keyChunks * chunkBytes
}

type wrapWizardModel struct {
	params       wrapParams
	currentField int
	fields       []fieldConfig
	done         bool
	cancelled    bool
}

// newWrapWizardModel creates a new TUI model for choosing wrap parameters.
func newWrapWizardModel() wrapWizardModel {
	fields := []fieldConfig{
		{
			name:        "KEKSize",
			description: "Key Encryption Key size",
			fieldType:   fieldTypeRadio,
			options: []option{
				{"128", "AES-128 KEK (16 bytes)"},
				{"192", "AES-192 KEK (24 bytes)"},
				{"256", "AES-256 KEK (32 bytes)"},
			},
			selected: 2, // Default to AES-256.
		},
		{
			name:         "KeyChunks",
			description:  "Key size in 64-bit chunks (8 bytes each)",
			fieldType:    fieldTypeNumeric,
			numericValue: "2",
			minValue:     1,
			maxValue:     4,
			digits:       1,
		},
	}

	return wrapWizardModel{
		params: wrapParams{
			kekBits:   256,
			keyChunks: 2,
		},
		currentField: 0,
		fields:       fields,
	}
}

// Init initializes the model.
func (m wrapWizardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m wrapWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		currentField := &m.fields[m.currentField]

		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true

			return m, tea.Quit
		case "enter":
			// Update parameters with selected values.
			m.updateParamsFromSelection()
			if m.currentField >= len(m.fields)-1 {
				m.done = true

				return m, tea.Quit
			}
			m.currentField++
		case "tab":
			// Move to next field.
			if m.currentField < len(m.fields)-1 {
				m.currentField++
			}
		case "shift+tab":
			// Move to previous field.
			if m.currentField > 0 {
				m.currentField--
			}
		case "up", "k":
			if currentField.fieldType == fieldTypeRadio {
				if currentField.selected > 0 {
					currentField.selected--
				}
			} else if currentField.fieldType == fieldTypeNumeric {
				m.incrementNumericValue(1)
			}
		case "down", "j":
			if currentField.fieldType == fieldTypeRadio {
				maxIdx := len(currentField.options) - 1
				if currentField.selected < maxIdx {
					currentField.selected++
				}
			} else if currentField.fieldType == fieldTypeNumeric {
				m.decrementNumericValue(1)
			}
		case "backspace":
			if currentField.fieldType == fieldTypeNumeric {
				m.handleBackspace()
			}
		default:
			// Handle numeric input for numeric fields.
			if currentField.fieldType == fieldTypeNumeric && len(msg.String()) == 1 {
				if char := msg.String()[0]; char >= '0' && char <= '9' {
					m.handleNumericInput(char)
				}
			}
		}
	}

	return m, nil
}

// incrementNumericValue increases the numeric value by the specified amount.
func (m *wrapWizardModel) incrementNumericValue(amount int) {
	currentField := &m.fields[m.currentField]
	if currentField.fieldType != fieldTypeNumeric {
		return
	}

	currentValue := m.parseNumericValue(currentField.numericValue)
	newValue := currentValue + amount
	if newValue <= currentField.maxValue {
		currentField.numericValue = m.formatNumericValue(newValue, currentField.digits)
	}
}

// decrementNumericValue decreases the numeric value by the specified amount.
func (m *wrapWizardModel) decrementNumericValue(amount int) {
	currentField := &m.fields[m.currentField]
	if currentField.fieldType != fieldTypeNumeric {
		return
	}

	currentValue := m.parseNumericValue(currentField.numericValue)
	newValue := currentValue - amount
	if newValue >= currentField.minValue {
		currentField.numericValue = m.formatNumericValue(newValue, currentField.digits)
	}
}

// handleNumericInput processes direct numeric character input.
func (m *wrapWizardModel) handleNumericInput(char byte) {
	currentField := &m.fields[m.currentField]
	if currentField.fieldType != fieldTypeNumeric {
		return
	}

	// Replace the value rather than append; the field is a single digit.
	newValue := m.parseNumericValue(string(char))
	if newValue >= currentField.minValue && newValue <= currentField.maxValue {
		currentField.numericValue = m.formatNumericValue(newValue, currentField.digits)
	}
}

// handleBackspace resets the numeric input to its minimum.
func (m *wrapWizardModel) handleBackspace() {
	currentField := &m.fields[m.currentField]
	if currentField.fieldType != fieldTypeNumeric {
		return
	}

	currentField.numericValue = m.formatNumericValue(currentField.minValue, currentField.digits)
}

// parseNumericValue converts a string to an integer.
func (m *wrapWizardModel) parseNumericValue(value string) int {
	if value == "" {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}

	return parsed
}

// formatNumericValue formats an integer with leading zeros.
func (m *wrapWizardModel) formatNumericValue(value, digits int) string {
	return fmt.Sprintf("%0*d", digits, value)
}

// updateParamsFromSelection updates the parameters with currently selected values.
func (m *wrapWizardModel) updateParamsFromSelection() {
	for i, field := range m.fields {
		switch field.name {
		case "KEKSize":
			selectedOption := field.options[field.selected]
			m.params.kekBits = m.parseNumericValue(selectedOption.value)
		case "KeyChunks":
			m.params.keyChunks = m.parseNumericValue(field.numericValue)
		}
		m.fields[i] = field
	}
}

// View renders the current state of the model.
func (m wrapWizardModel) View() string {
	if m.done {
		return "Wrap parameters configured successfully!\n"
	}

	if m.cancelled {
		return "Operation cancelled.\n"
	}

	s := "Configure Key Wrap Parameters\n"
	s += strings.Repeat("=", 50) + "\n\n"

	// Show progress.
	s += fmt.Sprintf("Field %d of %d\n\n", m.currentField+1, len(m.fields))

	// Show current field.
	currentField := m.fields[m.currentField]
	s += fmt.Sprintf("▶ %s: %s\n\n", currentField.name, currentField.description)

	if currentField.fieldType == fieldTypeRadio {
		// Show radio options for current field only.
		for j, opt := range currentField.options {
			selector := "  ○ "
			if j == currentField.selected {
				selector = "  ● "
			}
			s += fmt.Sprintf("%s%s - %s\n", selector, opt.value, opt.description)
		}
	} else if currentField.fieldType == fieldTypeNumeric {
		// Show numeric input.
		s += fmt.Sprintf("  [ %s ] (Range: %d-%d)\n",
			currentField.numericValue, currentField.minValue, currentField.maxValue)
		s += "  Type digits, use ↑/↓ to increment/decrement, Backspace to reset\n"
	}

	s += "\n"

	// Show summary of completed fields.
	if m.currentField > 0 {
		s += "Completed fields:\n"
		for i := 0; i < m.currentField; i++ {
			field := m.fields[i]
			if field.fieldType == fieldTypeRadio {
				selectedOption := field.options[field.selected]
				s += fmt.Sprintf("  %s: %s\n", field.name, selectedOption.value)
			} else if field.fieldType == fieldTypeNumeric {
				s += fmt.Sprintf("  %s: %s\n", field.name, field.numericValue)
			}
		}
		s += "\n"
	}

	s += "Navigation:\n"
	s += "  ↑/↓ or j/k: Select option or increment/decrement value\n"
	s += "  Tab/Shift+Tab: Next/Previous field\n"
	s += "  Enter: Confirm and continue\n"
	if currentField.fieldType == fieldTypeNumeric {
		s += "  0-9: Direct numeric input\n"
		s += "  Backspace: Reset value\n"
	}
	s += "  q or Ctrl+C: Quit\n"

	return s
}

// runWrapWizardTUI starts the interactive TUI for wrap parameter configuration.
func runWrapWizardTUI() (wrapParams, bool, error) {
	model := newWrapWizardModel()

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return wrapParams{}, false, err
	}

	m := finalModel.(wrapWizardModel)
	m.updateParamsFromSelection() // Ensure final state is captured.

	return m.params, !m.cancelled, nil
}
