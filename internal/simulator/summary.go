package simulator

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// PrintSummary writes a plain-text report of results to w
func PrintSummary(w io.Writer, r *Results) {
	fmt.Fprintf(w, "=== SIMULATION RESULTS ===\n")
	fmt.Fprintf(w, "Rounds played: %d (%d actions, %d reshuffles)\n", r.Rounds, r.Actions, r.Reshuffles)
	fmt.Fprintf(w, "Blackjack on deal: %d (%.1f%%)\n", r.Blackjacks, percent(r.Blackjacks, r.Rounds))
	fmt.Fprintf(w, "Dealer busts: %d (%.1f%%)\n", r.DealerBusts, percent(r.DealerBusts, r.Rounds))
	fmt.Fprintf(w, "Elapsed: %v\n", r.Elapsed.Truncate(time.Millisecond))

	fmt.Fprintf(w, "\n=== SEAT RESULTS ===\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "seat\tstrategy\tsettled\tnet\tnet/round\n")
	for i, seat := range r.Seats {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%+d\t%+.3f\n", i+1, seat.Strategy, seat.Rounds, seat.Net, seat.Mean())
	}
	tw.Flush()

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, outcome := range r.Outcomes() {
		fmt.Fprintf(tw, "%s", outcome)
		for _, seat := range r.Seats {
			fmt.Fprintf(tw, "\t%d", seat.Outcomes[outcome])
		}
		fmt.Fprintf(tw, "\n")
	}
	tw.Flush()
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
