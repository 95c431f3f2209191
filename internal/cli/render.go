package cli

import (
	"fmt"
	"strings"

	"github.com/fernwood-labs/donorpulse/internal/export"
	"github.com/fernwood-labs/donorpulse/internal/model"
)

// RenderReport renders a full lifecycle report for terminal display.
func RenderReport(report *model.LifecycleReport) string {
	sections := []string{
		renderSummary(report),
		renderStages(report),
	}
	if len(report.Cohorts) > 0 {
		sections = append(sections, renderCohorts(report))
	}
	if len(report.AtRiskDonors) > 0 {
		sections = append(sections, renderRoster(report))
	}
	return strings.Join(sections, "\n\n")
}

func renderSummary(report *model.LifecycleReport) string {
	content := fmt.Sprintf(
		"Total donors:    %d\nActive donors:   %d\nAt risk:         %d (%d critical)\nRetention rate:  %.1f%%",
		report.Summary.TotalDonors,
		report.Summary.ActiveDonors,
		report.Summary.AtRiskCount,
		report.Summary.CriticalRiskCount,
		report.Summary.RetentionRate,
	)
	title := fmt.Sprintf("Donor Lifecycle — %s", report.SnapshotAt.Format("Jan 2, 2006"))
	return RenderBox(title, content)
}

func renderStages(report *model.LifecycleReport) string {
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-12s %8s %14s %16s", "Stage", "Donors", "Avg Days", "Avg Value")))
	b.WriteString("\n")
	for _, stage := range report.Stages {
		line := fmt.Sprintf("%-12s %8d %14.1f %16s",
			stage.Stage,
			stage.DonorCount,
			stage.AvgDaysSinceLastDonation,
			export.FormatCurrency(stage.AvgLifetimeValue))
		if stage.DonorCount == 0 {
			line = SubtleStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderCohorts(report *model.LifecycleReport) string {
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-8s %8s %6s %6s %6s %6s %10s %14s",
		"Cohort", "Donors", "1m", "3m", "6m", "12m", "12m Rate", "Avg Value")))
	b.WriteString("\n")
	for _, cohort := range report.Cohorts {
		b.WriteString(fmt.Sprintf("%-8s %8d %6d %6d %6d %6d %9.1f%% %14s\n",
			cohort.Period,
			cohort.InitialCount,
			cohort.RetainedMonth1,
			cohort.RetainedMonth3,
			cohort.RetainedMonth6,
			cohort.RetainedMonth12,
			cohort.RetentionRate12M,
			export.FormatCurrency(cohort.AvgCohortValue)))
	}
	return b.String()
}

func renderRoster(report *model.LifecycleReport) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s At-Risk Donors (%d)", WarningIcon, len(report.AtRiskDonors))))
	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-24s %-10s %-10s %10s %14s", "Donor", "Stage", "Risk", "Days", "Value")))
	b.WriteString("\n")
	for _, donor := range report.AtRiskDonors {
		line := fmt.Sprintf("%-24s %-10s %-10s %10d %14s",
			truncate(donor.DonorName, 24),
			donor.Stage,
			donor.Assessment.Tier,
			donor.DaysSinceLastDonation,
			export.FormatCurrency(donor.LifetimeValue))
		if donor.Assessment.Tier == model.RiskCritical {
			line = ErrorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
