package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/racemarks/internal/models"
)

// GenerateConsoleReport formats the report for terminal output
func GenerateConsoleReport(report *Report) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Period: %s to %s\n", report.StartDate.Format(dateLayout), report.EndDate.Format(dateLayout)))
	builder.WriteString(fmt.Sprintf("Races scored: %d  skipped: %d\n\n", report.RacesScored, report.RacesSkipped))

	builder.WriteString("By mark\n")
	writeTable(&builder, report.Marks, func(label string) string {
		return models.Mark(label).Symbol() + " " + label
	})
	builder.WriteString("\nBy tier\n")
	writeTable(&builder, report.Tiers, func(label string) string { return label })
	return builder.String()
}

func writeTable(builder *strings.Builder, rows []Performance, name func(string) string) {
	builder.WriteString(fmt.Sprintf("%-14s %6s %6s %6s %8s %8s %9s %9s\n",
		"", "races", "wins", "places", "win%", "place%", "win ROI", "place ROI"))
	for _, p := range rows {
		builder.WriteString(fmt.Sprintf("%-14s %6d %6d %6d %7.1f%% %7.1f%% %8.1f%% %8.1f%%\n",
			name(p.Label), p.Races, p.Wins, p.Places,
			p.WinHitRate*100, p.PlaceHitRate*100, p.WinROI*100, p.PlaceROI*100))
	}
}

// GenerateJSONExport writes the report as JSON
func GenerateJSONExport(report *Report, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
