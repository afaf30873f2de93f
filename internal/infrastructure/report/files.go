package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/league-forecast/internal/domain/teamstats"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatText = "text"

	PlotHeatmapKind      = "heatmap"
	PlotDistributionKind = "distribution"
	PlotComparisonKind   = "comparison"
	PlotStatsKind        = "stats"

	fileJSON          = "forecast.json"
	fileProbabilities = "position_probabilities.csv"
	fileSummary       = "summary.txt"

	defaultPlotTeams = 3
)

// Options selects which artifacts Save writes into Dir.
type Options struct {
	Dir        string
	Formats    []string
	Plots      []string
	PlotFormat string
	// Teams feeds the distribution and comparison plots; empty means the
	// first teams of the current table.
	Teams []string
}

// Save writes the selected reports and plots and returns the written paths.
func Save(opts Options, in Input, stats []teamstats.TeamStatistics) ([]string, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, format := range opts.Formats {
		var (
			name  string
			write func(io.Writer) error
		)
		switch format {
		case FormatJSON:
			name = fileJSON
			write = func(w io.Writer) error { return WriteJSON(w, NewDocument(in)) }
		case FormatCSV:
			name = fileProbabilities
			write = func(w io.Writer) error { return WriteProbabilityCSV(w, in.Matrix) }
		case FormatText:
			name = fileSummary
			write = func(w io.Writer) error {
				if err := WriteTable(w, in.Current); err != nil {
					return err
				}
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
				return WriteSummary(w, in.Summaries)
			}
		default:
			return written, fmt.Errorf("unknown report format %q", format)
		}

		path := filepath.Join(opts.Dir, name)
		if err := writeFile(path, write); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	ext := "." + strings.TrimPrefix(strings.ToLower(opts.PlotFormat), ".")
	if ext == "." {
		ext = ".svg"
	}
	teams := opts.Teams
	if len(teams) == 0 {
		teams = in.Matrix.Teams[:min(defaultPlotTeams, len(in.Matrix.Teams))]
	}

	for _, kind := range opts.Plots {
		switch kind {
		case PlotHeatmapKind:
			path := filepath.Join(opts.Dir, "position_heatmap"+ext)
			if err := PlotHeatmap(in.Matrix, path); err != nil {
				return written, err
			}
			written = append(written, path)
		case PlotDistributionKind:
			for _, team := range teams {
				path := filepath.Join(opts.Dir, "distribution_"+slug(team)+ext)
				if err := PlotTeamDistribution(in.Matrix, team, path); err != nil {
					return written, err
				}
				written = append(written, path)
			}
		case PlotComparisonKind:
			path := filepath.Join(opts.Dir, "team_comparison"+ext)
			if err := PlotTeamsComparison(in.Matrix, teams, path); err != nil {
				return written, err
			}
			written = append(written, path)
		case PlotStatsKind:
			path := filepath.Join(opts.Dir, "team_statistics"+ext)
			if err := PlotTeamStatistics(stats, path); err != nil {
				return written, err
			}
			written = append(written, path)
		default:
			return written, fmt.Errorf("unknown plot kind %q", kind)
		}
	}

	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func slug(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('_')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
