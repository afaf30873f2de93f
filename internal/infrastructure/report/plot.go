package report

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/riskibarqy/league-forecast/internal/domain/forecast"
	"github.com/riskibarqy/league-forecast/internal/domain/teamstats"
)

var ErrUnknownTeam = errors.New("team not in forecast")

// minLabelProbability hides heatmap annotations that would round to 0%.
const minLabelProbability = 0.005

var barColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// probabilityGrid adapts a probability matrix to plotter.GridXYZ. Column c is
// rank c+1; row r is drawn top-down so the first team sits at the top.
type probabilityGrid struct {
	probs [][]float64
}

func (g probabilityGrid) Dims() (c, r int) {
	return len(g.probs), len(g.probs)
}

func (g probabilityGrid) Z(c, r int) float64 {
	return g.probs[len(g.probs)-1-r][c]
}

func (g probabilityGrid) X(c int) float64 {
	return float64(c)
}

func (g probabilityGrid) Y(r int) float64 {
	return float64(r)
}

// PlotHeatmap draws the team by rank probability matrix with a percentage in
// every non-trivial cell. The image format follows the path extension.
func PlotHeatmap(m forecast.PositionMatrix, path string) error {
	n := len(m.Teams)
	if n == 0 {
		return fmt.Errorf("plot heatmap: empty matrix")
	}
	grid := probabilityGrid{probs: m.Probabilities()}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Final position probabilities (%d simulations)", m.Trials)
	p.X.Label.Text = "Position"

	heat := plotter.NewHeatMap(grid, palette.Heat(32, 1))
	heat.Min, heat.Max = 0, 1
	p.Add(heat)

	var cells plotter.XYLabels
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := grid.Z(c, r)
			if v < minLabelProbability {
				continue
			}
			cells.XYs = append(cells.XYs, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			cells.Labels = append(cells.Labels, strconv.FormatFloat(v*100, 'f', 0, 64)+"%")
		}
	}
	if len(cells.XYs) > 0 {
		labels, err := plotter.NewLabels(cells)
		if err != nil {
			return fmt.Errorf("plot heatmap labels: %w", err)
		}
		p.Add(labels)
	}

	positions := make([]string, n)
	teams := make([]string, n)
	for i := 0; i < n; i++ {
		positions[i] = strconv.Itoa(i + 1)
		teams[i] = m.Teams[n-1-i]
	}
	p.NominalX(positions...)
	p.NominalY(teams...)

	size := vg.Length(120 + 36*n)
	return save(p, size+vg.Points(80), size, path)
}

// PlotTeamDistribution draws one team's final position distribution as bars.
func PlotTeamDistribution(m forecast.PositionMatrix, team, path string) error {
	probs, ok := m.Row(team)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}

	p := plot.New()
	p.Title.Text = team + ": final position distribution"
	p.X.Label.Text = "Position"
	p.Y.Label.Text = "Probability"
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(plotter.Values(probs), vg.Points(18))
	if err != nil {
		return fmt.Errorf("plot distribution bars: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)

	positions := make([]string, len(probs))
	for i := range probs {
		positions[i] = strconv.Itoa(i + 1)
	}
	p.NominalX(positions...)

	return save(p, vg.Length(200+24*len(probs)), 4*vg.Inch, path)
}

// PlotTeamsComparison overlays the position distributions of several teams.
func PlotTeamsComparison(m forecast.PositionMatrix, teams []string, path string) error {
	if len(teams) == 0 {
		return fmt.Errorf("plot comparison: no teams selected")
	}

	p := plot.New()
	p.Title.Text = "Final position distribution comparison"
	p.X.Label.Text = "Position"
	p.Y.Label.Text = "Probability"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	series := make([]any, 0, 2*len(teams))
	for _, team := range teams {
		probs, ok := m.Row(team)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTeam, team)
		}
		xys := make(plotter.XYs, len(probs))
		for i, v := range probs {
			xys[i] = plotter.XY{X: float64(i + 1), Y: v}
		}
		series = append(series, team, xys)
	}
	if err := plotutil.AddLinePoints(p, series...); err != nil {
		return fmt.Errorf("plot comparison lines: %w", err)
	}

	ticks := make([]plot.Tick, len(m.Teams))
	for i := range ticks {
		ticks[i] = plot.Tick{Value: float64(i + 1), Label: strconv.Itoa(i + 1)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Legend.Top = true

	return save(p, 8*vg.Inch, 5*vg.Inch, path)
}

// PlotTeamStatistics scatters home goals scored against home goals conceded per team.
func PlotTeamStatistics(stats []teamstats.TeamStatistics, path string) error {
	if len(stats) == 0 {
		return fmt.Errorf("plot statistics: no teams")
	}

	points := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(stats)),
		Labels: make([]string, len(stats)),
	}
	for i, s := range stats {
		points.XYs[i] = plotter.XY{X: s.Home.AvgGoalsScored, Y: s.Home.AvgGoalsConceded}
		points.Labels[i] = s.Team
	}

	p := plot.New()
	p.Title.Text = "Home goals scored vs conceded per match"
	p.X.Label.Text = "Goals scored"
	p.Y.Label.Text = "Goals conceded"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("plot statistics points: %w", err)
	}
	scatter.GlyphStyle.Color = barColor
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)

	labels, err := plotter.NewLabels(points)
	if err != nil {
		return fmt.Errorf("plot statistics labels: %w", err)
	}
	labels.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
	p.Add(labels)

	return save(p, 8*vg.Inch, 6*vg.Inch, path)
}

func save(p *plot.Plot, width, height vg.Length, path string) error {
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
