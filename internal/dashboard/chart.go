package dashboard

import (
	"html/template"
	"strings"

	"stancewatch/internal/stats"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// EChartsScriptURL is the echarts build the chart snippet runs against.
const EChartsScriptURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

type Series struct {
	Key   string
	Name  string
	Color string
}

var ChartSeries = []Series{
	{Key: "positive", Name: "Positive", Color: "#38A169"},
	{Key: "negative", Name: "Negative", Color: "#E53E3E"},
	{Key: "neutral", Name: "Neutral", Color: "#718096"},
}

// BarChart is a grouped bar chart with one group per target, in the order
// the targets were first seen, and one bar per series.
type BarChart struct {
	Targets []string
	Series  []Series
	Element template.HTML
	Script  template.HTML

	option string
}

func seriesValues(s stats.StanceStats) []int {
	return []int{s.Positive, s.Negative, s.Neutral}
}

func NewBarChart(stanceStats []stats.StanceStats) BarChart {
	targets := make([]string, 0, len(stanceStats))
	data := make([][]opts.BarData, len(ChartSeries))
	for _, s := range stanceStats {
		targets = append(targets, s.Target)
		for k, v := range seriesValues(s) {
			data[k] = append(data[k], opts.BarData{Name: s.Target, Value: v})
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)

	bar.SetXAxis(targets)
	for k, s := range ChartSeries {
		bar.AddSeries(s.Name, data[k], charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}

	snippet := bar.RenderSnippet()

	script := strings.TrimSpace(snippet.Script)
	if !strings.HasPrefix(script, "<script") {
		script = `<script type="text/javascript">` + script + `</script>`
	}

	return BarChart{
		Targets: targets,
		Series:  ChartSeries,
		Element: template.HTML(snippet.Element),
		Script:  template.HTML(script),
		option:  snippet.Option,
	}
}
