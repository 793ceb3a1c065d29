package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/WIIN2602/Farm2Hand/internal/assistant"
	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	transcriptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const transcriptTail = 4

// Model defines the application state
type Model struct {
	session    *widget.Session
	transcript *assistant.Transcript
	options    list.Model
	cart       table.Model
	input      textinput.Model
	panel      widget.Panel
	status     string
	error      string
}

func newModel(session *widget.Session, transcript *assistant.Transcript) Model {
	options := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	options.SetShowHelp(false)
	options.SetFilteringEnabled(false)

	cart := table.New(
		table.WithColumns([]table.Column{
			{Title: "สินค้า", Width: 24},
			{Title: "จำนวน", Width: 8},
			{Title: "ราคา", Width: 10},
		}),
		table.WithHeight(5),
	)

	ti := textinput.New()
	ti.Placeholder = "พิมพ์คำถาม..."
	ti.CharLimit = 156
	ti.Width = 40

	m := Model{
		session:    session,
		transcript: transcript,
		options:    options,
		cart:       cart,
		input:      ti,
	}
	m.refresh()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.options.SetSize(msg.Width-h, msg.Height-v-12)
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case "esc":
			name := navigator.Back.String()
			if m.session.View().Is(navigator.KindCategoryProductGrid) {
				name = navigator.BackToCategories.String()
			}
			m.apply(widget.Action{Type: widget.ActionTrigger, Trigger: name})
			return m, nil
		case "enter":
			if selected, ok := m.options.SelectedItem().(item); ok && selected.action != nil {
				m.apply(*selected.action)
			}
			return m, nil
		case "+", "-", "x":
			if selected, ok := m.options.SelectedItem().(item); ok && selected.cartLine != 0 {
				m.adjust(selected.cartLine, msg.String())
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.options, cmd = m.options.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.input.SetValue("")
		if text != "" {
			m.apply(widget.Action{Type: widget.ActionAsk, Text: text})
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) adjust(id int, key string) {
	var quantity int
	for _, line := range m.session.Cart().Items {
		if line.ID == id {
			quantity = line.Quantity
		}
	}
	switch key {
	case "+":
		m.apply(widget.Action{Type: widget.ActionUpdateQuantity, ProductID: id, Quantity: quantity + 1})
	case "-":
		m.apply(widget.Action{Type: widget.ActionUpdateQuantity, ProductID: id, Quantity: quantity - 1})
	case "x":
		m.apply(widget.Action{Type: widget.ActionRemoveFromCart, ProductID: id})
	}
}

func (m *Model) apply(a widget.Action) {
	m.error = ""
	m.status = ""
	result, err := widget.Dispatch(context.Background(), m.session, a)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			m.error = verr.Prompt
		} else {
			m.error = err.Error()
		}
		return
	}
	if result.Confirmation != nil {
		m.status = result.Confirmation.Message
	}
	m.refresh()
}

// refresh re-renders the panel into the list and cart table.
func (m *Model) refresh() {
	panel, err := m.session.Panel(context.Background())
	if err != nil {
		m.error = err.Error()
		return
	}
	m.panel = panel
	m.options.Title = panelTitle(panel)
	m.options.SetItems(itemsFor(panel))
	m.options.Select(0)

	snapshot := m.session.Cart()
	rows := make([]table.Row, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		rows = append(rows, table.Row{line.Name, fmt.Sprint(line.Quantity), "฿" + line.LineTotal().StringFixed(0)})
	}
	m.cart.SetRows(rows)
}

func panelTitle(p widget.Panel) string {
	switch {
	case p.Category != nil:
		return p.Category.Emoji + " " + string(p.Category.Name)
	case p.Summary != nil:
		return "สรุปการสั่งซื้อ"
	case p.Orders != nil:
		return "ออเดอร์ของฉัน"
	case p.Categories != nil:
		return "หมวดหมู่สินค้า"
	case p.Products != nil:
		return "สินค้าแนะนำ"
	}
	return "Farm2Hand"
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Farm2Hand"))
	b.WriteString(" ")
	b.WriteString(infoStyle.Render(fmt.Sprintf("ตะกร้า %d ชิ้น", m.panel.CartCount)))
	b.WriteString("\n\n")
	b.WriteString(m.options.View())

	if m.session.View().Is(navigator.KindOrderSummary) && m.panel.Summary != nil && !m.panel.Summary.Empty {
		b.WriteString("\n")
		b.WriteString(m.cart.View())
	}

	if entries := m.transcript.Entries(); len(entries) > 0 {
		if len(entries) > transcriptTail {
			entries = entries[len(entries)-transcriptTail:]
		}
		b.WriteString("\n")
		for _, e := range entries {
			b.WriteString(transcriptStyle.Render(fmt.Sprintf("%s: %s", e.Role, e.Text)))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + successStyle.Render(m.status))
	}
	if m.error != "" {
		b.WriteString("\n" + errorStyle.Render(m.error))
	}
	if m.input.Focused() {
		b.WriteString("\n" + m.input.View())
	} else {
		b.WriteString("\n" + transcriptStyle.Render("enter เลือก · esc กลับ · / ถามคำถาม · q ออก"))
	}
	return docStyle.Render(b.String())
}
