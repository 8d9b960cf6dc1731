// Package report prints the stance dashboard to a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"stancewatch/internal/dashboard"
	"stancewatch/internal/model"
	"stancewatch/pkg/news"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

type Printer struct {
	out       io.Writer
	useColors bool
}

func NewPrinter(out io.Writer, useColors bool) *Printer {
	return &Printer{out: out, useColors: useColors}
}

// UseColors reports whether colour output suits the environment.
func UseColors() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func (p *Printer) Render(v dashboard.View) error {
	p.header(v.Heading)

	if v.Loading {
		fmt.Fprintln(p.out, "Loading...")
		return nil
	}

	if n := v.Notification; n != nil {
		fmt.Fprintf(p.out, "%s %s\n\n", p.paint(color.FgRed, n.Title+":"), n.Description)
	}

	p.header(v.ChartHeading)
	rows := make([][]string, 0, len(v.Stats))
	for _, s := range v.Stats {
		rows = append(rows, []string{
			s.Target,
			p.paint(color.FgGreen, strconv.Itoa(s.Positive)),
			p.paint(color.FgRed, strconv.Itoa(s.Negative)),
			p.paint(color.FgHiBlack, strconv.Itoa(s.Neutral)),
			strconv.Itoa(s.Total()),
		})
	}
	if err := p.table([]string{"Target", "Positive", "Negative", "Neutral", "Total"}, rows); err != nil {
		return err
	}

	p.header("Recent Articles")
	for _, a := range v.Recent {
		fmt.Fprintf(p.out, "  %s\n    By %s\n", p.paint(color.Bold, a.Title), a.Blogger)
	}
	fmt.Fprintln(p.out)

	p.header("Top Targets")
	for _, t := range v.Top {
		fmt.Fprintf(p.out, "  %s\n    %d mentions\n", p.paint(color.Bold, t.Target), t.Mentions)
	}

	return nil
}

// PredictionCounts prints stored prediction tallies.
func (p *Printer) PredictionCounts(counts []model.PredictionCount) error {
	if len(counts) == 0 {
		fmt.Fprintln(p.out, p.paint(color.FgYellow, "No predictions found"))
		return nil
	}

	p.header("Stance Predictions")
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Target, c.TargetType, strconv.Itoa(c.Count)})
	}
	return p.table([]string{"Target", "Target Type", "Count"}, rows)
}

// Bloggers prints the bloggers found on a news source's index.
func (p *Printer) Bloggers(bloggers []news.Blogger) error {
	if len(bloggers) == 0 {
		fmt.Fprintln(p.out, p.paint(color.FgYellow, "No bloggers found"))
		return nil
	}

	p.header("Available Bloggers")
	rows := make([][]string, 0, len(bloggers))
	for _, b := range bloggers {
		rows = append(rows, []string{b.Name, b.ProfileURL})
	}
	return p.table([]string{"Name", "Profile URL"}, rows)
}

func (p *Printer) header(text string) {
	fmt.Fprintln(p.out, p.paint(color.Bold, text))
}

func (p *Printer) paint(attr color.Attribute, text string) string {
	c := color.New(attr)
	if p.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

func (p *Printer) table(headers []string, rows [][]string) error {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintln(p.out)
	return nil
}
