package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-quant/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for secondary text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	GainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	LossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// FormatPnL renders a value green when positive and red when negative.
func FormatPnL(value float64, suffix string) string {
	text := fmt.Sprintf("%.2f%s", value, suffix)

	switch {
	case value > 0:
		return GainStyle.Render(text)
	case value < 0:
		return LossStyle.Render(text)
	default:
		return text
	}
}

// RenderSummary renders one block per report, labelled by the strategy file name.
func RenderSummary(names []string, reports []types.BacktestReport) string {
	var b strings.Builder

	for i, report := range reports {
		b.WriteString(TitleStyle.Render(fmt.Sprintf("%s  %s %s", names[i], report.Symbol, report.Interval)))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("run " + report.RunID))
		b.WriteString("\n")

		fmt.Fprintf(&b, "  trades:        %d\n", report.TradeCount)

		if report.Performance.IsInsufficientData() {
			fmt.Fprintf(&b, "  performance:   %s\n", HelpStyle.Render(report.Performance.Message))
		} else {
			m := report.Performance.Metrics
			fmt.Fprintf(&b, "  total pnl:     %s (%s)\n", FormatPnL(m.TotalPnL, ""), FormatPnL(m.TotalPnLPct, "%"))
			fmt.Fprintf(&b, "  win rate:      %.2f%%\n", m.WinRate)
			fmt.Fprintf(&b, "  sharpe:        %.2f\n", m.SharpeRatio)
			fmt.Fprintf(&b, "  max drawdown:  %.2f%%\n", m.MaxDrawdownPct)
		}

		fmt.Fprintf(&b, "  buy and hold:  %s (%s)\n", FormatPnL(report.Benchmark.PnL, ""), FormatPnL(report.Benchmark.PnLPct, "%"))
		b.WriteString("\n")
	}

	return b.String()
}
