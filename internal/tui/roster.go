// Package tui provides an interactive terminal browser for the at-risk
// donor roster.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fernwood-labs/donorpulse/internal/export"
	"github.com/fernwood-labs/donorpulse/internal/model"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#7BC96F"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	criticalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// RosterModel is the bubbletea model for browsing the at-risk roster with a
// detail pane for the selected donor.
type RosterModel struct {
	table  table.Model
	roster []model.AtRiskDonor
	width  int
}

// NewRosterModel builds the browser over a report's at-risk roster.
func NewRosterModel(roster []model.AtRiskDonor) RosterModel {
	columns := []table.Column{
		{Title: "Donor", Width: 24},
		{Title: "Stage", Width: 10},
		{Title: "Risk", Width: 9},
		{Title: "Days", Width: 7},
		{Title: "Gifts", Width: 6},
		{Title: "Value", Width: 13},
	}

	rows := make([]table.Row, 0, len(roster))
	for _, donor := range roster {
		rows = append(rows, table.Row{
			donor.DonorName,
			string(donor.Stage),
			string(donor.Assessment.Tier),
			strconv.Itoa(donor.DaysSinceLastDonation),
			strconv.Itoa(donor.TotalDonations),
			export.FormatCurrency(donor.LifetimeValue),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	return RosterModel{table: t, roster: roster}
}

// Init implements tea.Model.
func (m RosterModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m RosterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m RosterModel) View() string {
	if len(m.roster) == 0 {
		return helpStyle.Render("No at-risk donors. Press q to quit.")
	}

	sections := []string{
		baseStyle.Render(m.table.View()),
		m.renderDetail(),
		helpStyle.Render("↑/↓ navigate · q quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// renderDetail shows factors and the recommended action for the selection.
func (m RosterModel) renderDetail() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.roster) {
		return ""
	}
	donor := m.roster[cursor]

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(donor.DonorName))
	b.WriteString("\n")

	tier := string(donor.Assessment.Tier)
	if donor.Assessment.Tier == model.RiskCritical {
		tier = criticalStyle.Render(tier)
	}
	b.WriteString(fmt.Sprintf("%s %s (score %d)\n",
		detailLabelStyle.Render("Risk:"), tier, donor.Assessment.Score))

	lastGift := "Never"
	if !donor.LastDonationAt.IsZero() {
		lastGift = donor.LastDonationAt.Format("2006-01-02")
	}
	b.WriteString(fmt.Sprintf("%s %s\n", detailLabelStyle.Render("Last gift:"), lastGift))

	for _, factor := range donor.Assessment.RiskFactors {
		b.WriteString(fmt.Sprintf("  • %s\n", factor))
	}

	b.WriteString(fmt.Sprintf("%s %s",
		detailLabelStyle.Render("Action:"), donor.Assessment.RecommendedAction))

	return baseStyle.Render(b.String())
}

// Run starts the interactive browser and blocks until the user quits.
func Run(roster []model.AtRiskDonor) error {
	program := tea.NewProgram(NewRosterModel(roster), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("roster browser failed: %w", err)
	}
	return nil
}
