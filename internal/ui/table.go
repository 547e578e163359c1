package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"setrunner/internal/domain"
)

// RenderTable prints the summary as a table of sets and their cases
func RenderTable(w io.Writer, summary *domain.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Run %s (%s)", summary.RunID, formatDuration(summary.Duration)))

	t.AppendHeader(table.Row{"Type", "Name", "Duration", "Passed", "Failed", "Status", "Error"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Type", AutoMerge: true},
		{Name: "Name", WidthMax: 50},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Error", WidthMax: 60},
	})

	for _, set := range summary.Sets {
		failed := len(set.Failed())
		t.AppendRow(table.Row{
			"Set",
			set.Name,
			formatDuration(set.Duration),
			len(set.Cases) - failed,
			failed,
			statusString(failed == 0),
			"",
		})
		for i, c := range set.Cases {
			prefix := "├──"
			if i == len(set.Cases)-1 {
				prefix = "└──"
			}
			errText := ""
			if c.Err != nil {
				errText = c.Err.Error()
			}
			t.AppendRow(table.Row{
				"Case",
				fmt.Sprintf("%s %s", prefix, c.Name),
				formatDuration(c.Duration),
				boolToInt(c.Success),
				boolToInt(!c.Success),
				statusString(c.Success),
				errText,
			})
		}
		t.AppendSeparator()
	}

	if summary.Passed() {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		fmt.Sprintf("%d set(s)", summary.Stats.Sets),
		formatDuration(summary.Duration),
		summary.Stats.Passed,
		summary.Stats.Failed,
		statusString(summary.Passed()),
		fmt.Sprintf("%d run error(s)", len(summary.Errors)),
	})

	t.Render()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func statusString(passed bool) string {
	if passed {
		return "✓ pass"
	}
	return "✗ fail"
}

// formatDuration formats the duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
