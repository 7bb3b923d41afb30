package simulator

import (
	"fmt"
	"io"

	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/statistics"
)

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, display.HeaderStyle.Render(" SIMULATION RESULTS "))
	fmt.Fprintf(w, "Rounds played: %d", stats.Rounds)
	if stats.Stalled > 0 || stats.Failed > 0 {
		fmt.Fprint(w, display.WarningStyle.Render(fmt.Sprintf(" (%d stalled, %d failed)", stats.Stalled, stats.Failed)))
	}
	fmt.Fprintln(w)
	if stats.Rounds == 0 {
		return
	}

	fmt.Fprintf(w, "Steps per round: mean %.2f, sd %.2f, p50 %.0f, p95 %.0f\n",
		stats.MeanSteps(), stats.StepsStdDev(), stats.StepsPercentile(0.5), stats.StepsPercentile(0.95))
	fmt.Fprintf(w, "Dealer: %d wins (%.1f%%), %d busts (%.1f%%)\n",
		stats.DealerWins, percent(stats.DealerWins, stats.Rounds),
		stats.DealerBusts, percent(stats.DealerBusts, stats.Rounds))

	fmt.Fprintln(w)
	for _, p := range stats.Players() {
		low, high := p.ConfidenceInterval95()
		fmt.Fprintf(w, "%s  win %s  [%.1f%%, %.1f%%]  bust %.1f%%  push %.1f%%  avg score %.1f\n",
			display.NameStyle.Render(fmt.Sprintf("%-12s", p.Name)),
			display.SuccessStyle.Render(fmt.Sprintf("%5.1f%%", p.WinRate()*100)),
			low*100, high*100,
			percent(p.Busts, p.Rounds),
			percent(p.Pushes, p.Rounds),
			p.MeanScore())
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
