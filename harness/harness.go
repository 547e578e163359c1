// Package harness is the entry point for test programs. A program builds its
// test sets, passes a registration function to Main and lets the command line
// decide which sets and cases run.
//
//	func main() {
//		harness.Main(func(r harness.Registrar) {
//			r.Run(mathSet)
//		})
//	}
package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"setrunner/internal/capture"
	"setrunner/internal/cli"
	"setrunner/internal/cli/commands"
	"setrunner/internal/config"
	"setrunner/internal/domain"
	"setrunner/internal/environment"
	"setrunner/internal/exitcodes"
)

type (
	Environment      = domain.Environment
	EnvironmentFuncs = domain.EnvironmentFuncs
	CaseFunc         = domain.CaseFunc
	TestCase         = domain.TestCase
	TestSet          = domain.TestSet
	TestCaseResult   = domain.TestCaseResult
	TestSetResult    = domain.TestSetResult
	Summary          = domain.Summary

	// Registrar accepts test sets; Run returns immediately and sets execute in call order
	Registrar = commands.Registrar
	// RegisterFunc registers every test set of the program
	RegisterFunc = commands.RegisterFunc

	Capturer = capture.Capturer
	MySQL    = environment.MySQL
)

var version = "dev"

// Command builds the root command for a test program
func Command(register RegisterFunc, opts commands.Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          filepath.Base(os.Args[0]),
		Short:        "Run registered test sets",
		Long:         `Runs the test sets registered by this program one after another and prints a summary. Use --set-name and --case-name to narrow the run.`,
		Version:      version,
		SilenceUsage: true,
	}

	cfg := config.New()
	var flags cli.Flags
	cmds := commands.NewCommands(cfg, register, opts)
	cmds.Register(rootCmd, &flags, cfg)
	return rootCmd
}

// Main runs the program's test sets and exits the process with the run's status
func Main(register RegisterFunc) {
	if err := Command(register, commands.Options{Exit: os.Exit}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitcodes.RuntimeErr)
	}
	// list and --help do not go through the scheduler
	os.Exit(exitcodes.Success)
}

// NewCapturer returns a capture helper for the renderer at the configured URL
func NewCapturer() *Capturer {
	return capture.New(config.Load(config.Flags{EnvFile: config.DefaultEnvFile}).CaptureURL)
}

// NewMySQL returns a MySQL environment for the named set, configured from DB_* variables
func NewMySQL(setName string) (*MySQL, error) {
	return environment.NewMySQL(environment.MySQLConfigFromEnv(config.DefaultEnvFile), setName)
}

// MySQLFrom returns the MySQL environment a case was given, if the set uses one
func MySQLFrom(env Environment) (*MySQL, bool) {
	return environment.FromEnvironment(env)
}
