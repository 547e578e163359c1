package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"setrunner/internal/domain"
	"setrunner/internal/execution"
)

// PrintTestList prints registered sets and their cases as a tree.
// Cases the filter would run are marked with [x].
func PrintTestList(w io.Writer, sets []domain.TestSet, filter execution.Filter) {
	cases := 0
	for _, set := range sets {
		cases += len(set.Cases)
	}
	color.New(color.FgGreen).Fprintf(w, "Found %d test set(s) with %d test case(s):\n\n", len(sets), cases)

	for i, set := range sets {
		isLastSet := i == len(sets)-1
		connector := "├── "
		if isLastSet {
			connector = "└── "
		}
		color.New(color.FgCyan).Fprintf(w, "%s%s\n", connector, set.Name)

		if len(set.Cases) == 0 {
			fmt.Fprintf(w, "%s%s\n", childPrefix(isLastSet, true), color.RedString("(no test cases)"))
			continue
		}
		for j, c := range set.Cases {
			marker := "[ ]"
			if filter.MatchesCase(set.Name, c.Name) {
				marker = color.GreenString("[x]")
			}
			fmt.Fprintf(w, "%s%s %s\n", childPrefix(isLastSet, j == len(set.Cases)-1), marker, color.YellowString(c.Name))
		}
	}
}

func childPrefix(isLastParent, isLastChild bool) string {
	switch {
	case isLastParent && isLastChild:
		return "    └── "
	case isLastParent:
		return "    ├── "
	case isLastChild:
		return "│   └── "
	default:
		return "│   ├── "
	}
}
