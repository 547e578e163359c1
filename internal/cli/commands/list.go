package commands

import (
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"setrunner/internal/config"
	"setrunner/internal/domain"
	"setrunner/internal/execution"
	"setrunner/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config   *config.Config
	register RegisterFunc
	out      io.Writer
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, register RegisterFunc, out io.Writer) *ListCommand {
	return &ListCommand{
		config:   cfg,
		register: register,
		out:      out,
	}
}

// collector is a Registrar that keeps sets instead of running them
type collector struct {
	mu   sync.Mutex
	sets []domain.TestSet
}

func (c *collector) Run(set domain.TestSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets = append(c.sets, set)
	return nil
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	sets := &collector{}
	lc.register(sets)

	if len(sets.sets) == 0 {
		color.New(color.FgYellow).Fprintln(lc.out, "No test sets registered")
		return nil
	}

	ui.PrintTestList(lc.out, sets.sets, execution.NewFilter(lc.config.SetName, lc.config.CaseName))
	return nil
}
