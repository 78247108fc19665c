package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourusername/racemarks/internal/models"
	"github.com/yourusername/racemarks/internal/service"
)

var (
	raceIDFlag   string
	skipRefresh  bool
	showUnmarked bool
)

func init() {
	scoreCmd.Flags().StringVar(&raceIDFlag, "race", "", "Race id to score")
	scoreCmd.Flags().BoolVar(&skipRefresh, "no-stats", false, "Score without building aggregate statistics")
	scoreCmd.Flags().BoolVar(&showUnmarked, "all", false, "Print unmarked entrants too")
	_ = scoreCmd.MarkFlagRequired("race")
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one race card and print its marks",
	RunE: func(cmd *cobra.Command, args []string) error {
		raceID, err := uuid.Parse(raceIDFlag)
		if err != nil {
			return fmt.Errorf("%w: race %q: %v", models.ErrInvalidID, raceIDFlag, err)
		}

		ctx := cmd.Context()
		if err := setupDependencies(ctx); err != nil {
			return err
		}
		if !skipRefresh {
			if _, err := refresher.Refresh(ctx); err != nil {
				return err
			}
		}

		result, err := scorer.ScoreRace(ctx, raceID)
		if err != nil {
			return err
		}
		return printCard(os.Stdout, result, showUnmarked)
	},
}

func printCard(out io.Writer, result *service.RaceScore, all bool) error {
	race := result.Race
	fmt.Fprintf(out, "%s  %s  %dm %s %s\n\n", race.Track, race.Date, race.Distance, race.Surface, race.Condition)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tMARK\tTIER\tNAME\tPROB\tDIVERGENCE\tCLASS\tSCORE")
	for _, e := range result.Ranked {
		if !all && e.Mark == models.MarkNone {
			continue
		}
		divergence := "-"
		if e.Divergence != nil {
			divergence = fmt.Sprintf("%+.3f", *e.Divergence)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.3f\t%s\t%s\t%.4f\n",
			e.Position, e.Mark.Symbol(), e.Tier, e.Features.EntrantName,
			e.Probability, divergence, e.Classification, e.CompositeScore)
	}
	return w.Flush()
}
