// Command dashboard is a small console client for the Meridian API. It
// loads the signed-in driver's state, prints a wellness summary, and
// walks through the pre-drive assessment.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shkshreyas/Meridian/internal/apiclient"
	"github.com/shkshreyas/Meridian/internal/appstate"
	"github.com/shkshreyas/Meridian/internal/assessment"
	"github.com/shkshreyas/Meridian/internal/config"
	"github.com/shkshreyas/Meridian/internal/logging"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if cfg.APIBaseURL == "" {
		log.Fatal("API_BASE_URL is required")
	}

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	client := apiclient.New(cfg.APIBaseURL, cfg.APIToken)
	store := appstate.New(client, logger)

	if err := run(context.Background(), os.Stdout, logger, store, client); err != nil {
		log.Fatalf("dashboard: %v", err)
	}
}

func run(ctx context.Context, out io.Writer, logger *zap.Logger, store *appstate.Store, client *apiclient.Client) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	store.Initialize(ctx)

	printSummary(out, store)

	if tr, found, err := client.ActiveTrip(ctx); err != nil {
		logger.Warn("active trip lookup failed", zap.Error(err))
	} else if found {
		store.SetCurrentTrip(tr)
		fmt.Fprintf(out, "Trip in progress: %s (started %s)\n", tr.ID, tr.StartTime.Format("15:04"))
	}

	runAssessment(out, assessment.NewFlow())
	return nil
}

func printSummary(out io.Writer, store *appstate.Store) {
	if p, ok := store.Profile(); ok {
		name := p.DisplayName
		if name == "" {
			name = p.ID
		}
		fmt.Fprintf(out, "Driver: %s\n", name)
		fmt.Fprintf(out, "Trips: %d  Distance: %.1f km  Avg wellness: %.0f\n",
			p.TotalTrips, p.TotalDistance, p.AverageWellnessScore)
	} else {
		fmt.Fprintln(out, "No profile available.")
	}

	earned := store.EarnedBadges()
	fmt.Fprintf(out, "Badges earned (%d):\n", len(earned))
	for _, b := range earned {
		fmt.Fprintf(out, "  * %s\n", b.Name)
	}
	for _, b := range store.LockedBadges() {
		fmt.Fprintf(out, "  - %s (locked)\n", b.Name)
	}
}

func runAssessment(out io.Writer, flow *assessment.Flow) {
	fmt.Fprintln(out, "\nPre-drive assessment:")
	for {
		step := flow.Current()
		fmt.Fprintf(out, "[%3d%%] %s: %s\n", flow.Progress(), step.Title(), step.Instruction())
		if flow.IsComplete() {
			return
		}
		if _, err := flow.Advance(); err != nil {
			return
		}
	}
}
