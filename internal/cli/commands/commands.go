package commands

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"setrunner/internal/cli"
	"setrunner/internal/config"
	"setrunner/internal/domain"
	"setrunner/internal/ui"
)

// Registrar accepts test sets for execution
type Registrar interface {
	Run(set domain.TestSet) error
}

// RegisterFunc registers the program's test sets with a Registrar
type RegisterFunc func(r Registrar)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand
}

// Options customizes command dependencies, mainly for tests
type Options struct {
	Out    io.Writer
	Err    io.Writer
	Exit   func(code int)
	Viewer ui.Viewer
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, register RegisterFunc, opts Options) *Commands {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}
	if opts.Viewer == nil {
		opts.Viewer = ui.NewErrorViewer()
	}

	return &Commands{
		Run:  NewRunCommand(cfg, register, opts),
		List: NewListCommand(cfg, register, opts.Out),
	}
}

// Register wires the commands into the root command. The root command runs
// the registered test sets; list only prints them.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	loadConfig := func(cmd *cobra.Command, args []string) error {
		*cfg = *config.Load(flags.ToConfigFlags())
		if cfg.NoColor {
			color.NoColor = true
		}
		return nil
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&flags.SetName, "set-name", "s", "", "Run only the test set with this exact name (env "+config.EnvSetName+")")
	persistent.StringVarP(&flags.CaseName, "case-name", "c", "", "Run only the test case with this exact name (env "+config.EnvCaseName+")")
	persistent.StringVar(&flags.EnvFile, "env-file", config.DefaultEnvFile, "Environment file loaded before reading environment variables")
	persistent.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")

	rootCmd.PersistentPreRunE = loadConfig
	rootCmd.RunE = c.Run.Execute
	rootCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr while cases run")
	rootCmd.Flags().BoolVar(&flags.Table, "table", false, "Append a results table to the summary")
	rootCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.Flags().StringVar(&flags.MetricsTextfile, "metrics-textfile", "", "Write run metrics in Prometheus text format to this file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered test sets",
		Long:  "Print the registered test sets and their cases without running them, marking what the filters select",
		RunE:  c.List.Execute,
	}
	rootCmd.AddCommand(listCmd)
}
