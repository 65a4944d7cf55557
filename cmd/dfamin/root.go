package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/geange/dfamin"
)

var (
	configPath  string // Path of the YAML config
	outputDir   string // Directory for output.txt and diagrams
	renderMode  string // Diagram format
	policyName  string // Missing transition policy
	logLevel    string // Log verbosity level
	useLanguage bool   // check: compare languages instead of structure
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dfamin",
	Short: "Minimize deterministic finite automata",
}

// minimizeCmd minimizes one automaton file
var minimizeCmd = &cobra.Command{
	Use:   "minimize [input]",
	Short: "Minimize an automaton and write output.txt plus diagrams",
	Long: "Minimize an automaton and write output.txt plus diagrams of the input and the result. " +
		"Without an input argument the path is read from the first line of stdin.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustConfig(cmd)

		input := ""
		if len(args) == 1 {
			input = args[0]
		}
		if err := runMinimize(cfg, input, cmd.InOrStdin()); err != nil {
			logrus.Fatalf("Minimization failed: %v", err)
		}
	},
}

// checkCmd compares two automaton files
var checkCmd = &cobra.Command{
	Use:   "check <first> <second>",
	Short: "Report whether two automata are equivalent",
	Long: "Report whether two automata are equivalent. Both files must be in the input format, where every " +
		"state declares one transition per alphabet symbol. An output.txt written by minimize for a partial " +
		"automaton has states with fewer transitions and is rejected with a format error.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		mustConfig(cmd)

		equal, err := runCheck(args[0], args[1], useLanguage)
		if err != nil {
			logrus.Fatalf("Check failed: %v", err)
		}
		if !equal {
			fmt.Fprintln(cmd.OutOrStdout(), "not equivalent")
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "equivalent")
	},
}

// mustConfig loads the config, applies flag overrides and sets up logging.
func mustConfig(cmd *cobra.Command) Config {
	cfg, err := loadConfig(configPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	cfg = applyFlags(cmd, cfg)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", cfg.LogLevel)
	}
	logrus.SetLevel(level)
	return cfg
}

func applyFlags(cmd *cobra.Command, cfg Config) Config {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("render") {
		cfg.Render = renderMode
	}
	if flags.Changed("policy") {
		cfg.Policy = policyName
	}
	if flags.Changed("log") {
		cfg.LogLevel = logLevel
	}
	return cfg
}

func runMinimize(cfg Config, input string, stdin io.Reader) error {
	if input == "" {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input path: %w", err)
		}
		input = strings.TrimSpace(line)
		if input == "" {
			return errors.New("no input path given")
		}
	}

	policy, err := dfamin.ParseMissingTransitionPolicy(cfg.Policy)
	if err != nil {
		return err
	}
	renderer, ext, err := cfg.renderer()
	if err != nil {
		return err
	}

	a, err := dfamin.ReadFile(input)
	if err != nil {
		return err
	}
	logrus.Infof("Read %s: %d states, %d transitions, alphabet %q",
		input, a.GetNumStates(), a.GetNumTransitions(), string(a.GetAlphabet()))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	if err := renderFile(renderer, ext, filepath.Join(cfg.OutputDir, "input"), a); err != nil {
		return err
	}

	minimal := dfamin.Minimize(a, dfamin.WithMissingTransitions(policy))
	logrus.Infof("Minimized to %d states (policy %s)", minimal.GetNumStates(), policy)

	if err := renderFile(renderer, ext, filepath.Join(cfg.OutputDir, "output"), minimal); err != nil {
		return err
	}
	outPath := filepath.Join(cfg.OutputDir, "output.txt")
	if err := dfamin.WriteFile(outPath, minimal); err != nil {
		return err
	}
	logrus.Infof("Wrote %s", outPath)
	return nil
}

// renderFile writes base.ext; a renderer without extension writes nothing.
func renderFile(renderer dfamin.Renderer, ext, base string, a *dfamin.Automaton) (err error) {
	if ext == "" {
		return renderer.Render(io.Discard, dfamin.NewDiagram(a))
	}
	path := base + "." + ext
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	if err := renderer.Render(f, dfamin.NewDiagram(a)); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	logrus.Debugf("Rendered %s", path)
	return nil
}

func runCheck(first, second string, language bool) (bool, error) {
	a, err := dfamin.ReadFile(first)
	if err != nil {
		return false, err
	}
	b, err := dfamin.ReadFile(second)
	if err != nil {
		return false, err
	}
	if language {
		return dfamin.LanguageEquivalent(a, b), nil
	}
	return dfamin.Equivalent(a, b), nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	minimizeCmd.Flags().StringVar(&outputDir, "out", "output", "Directory for output.txt and diagrams")
	minimizeCmd.Flags().StringVar(&renderMode, "render", "dot", "Diagram format (dot, png, svg, none)")
	minimizeCmd.Flags().StringVar(&policyName, "policy", dfamin.DistinguishMissing.String(),
		"Missing transition policy (distinguish-missing, implicit-sink)")

	checkCmd.Flags().BoolVar(&useLanguage, "language", false, "Compare accepted languages, treating missing transitions as dead")

	rootCmd.AddCommand(minimizeCmd)
	rootCmd.AddCommand(checkCmd)
}
