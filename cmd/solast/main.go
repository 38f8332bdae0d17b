package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/th13vn/solast/pkg/diagnostics"
	"github.com/th13vn/solast/pkg/parser"
	"github.com/th13vn/solast/pkg/version"
)

var (
	buildVersion = "dev"
	buildTime    = "unknown"
	gitCommit    = "unknown"
)

func init() {
	if buildVersion == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.Main.Version != "" && info.Main.Version != "(devel)" {
				buildVersion = info.Main.Version
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					if len(setting.Value) >= 7 {
						gitCommit = setting.Value[:7]
					}
				case "vcs.time":
					buildTime = setting.Value
				}
			}
		}
	}
}

var (
	outputFile  string
	tolerant    bool
	prettyPrint bool
	serveAddr   string
	metricsAddr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "solast",
		Short:   "solast: a front-end parser for a Solidity-like contract language",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, gitCommit, buildTime),
	}

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a source file and print its AST as JSON",
		Long: `Parse a source file and output its Abstract Syntax Tree as JSON.
If no file is specified or '-' is given, reads from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	parseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	parseCmd.Flags().BoolVar(&tolerant, "tolerant", false, "tolerant mode: collect every diagnostic instead of stopping at the first")
	parseCmd.Flags().BoolVarP(&prettyPrint, "pretty", "p", true, "pretty-print JSON output")

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate syntax without printing an AST",
		Long: `Validate a source file's syntax and report diagnostics.
Exit code 0 if valid, 1 if lexical or syntax errors were found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	versionCmd := &cobra.Command{
		Use:   "version-detect [file]",
		Short: "Report the solidity pragma's version constraint",
		Long:  `Detect and resolve every 'pragma solidity <constraint>;' directive in a source file.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVersionDetect,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a validation service over HTTP",
		Long: `Run a small HTTP service exposing POST /parse for batch/CI use and a
separate /metrics endpoint in Prometheus exposition format, so a pipeline can
validate many sources against one warm process.`,
		RunE: runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "address for the /parse HTTP service")
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "127.0.0.1:9090", "address for the /metrics HTTP service")

	rootCmd.AddCommand(parseCmd, validateCmd, versionCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	unit, err := parser.Parse(input, &parser.Options{Tolerant: tolerant})
	if err != nil {
		if _, ok := err.(*diagnostics.Bundle); !ok || unit == nil {
			return fmt.Errorf("parse error: %w", err)
		}
		printDiagnostics(err)
	}

	var output []byte
	if prettyPrint {
		output, err = json.MarshalIndent(unit, "", "  ")
	} else {
		output, err = json.Marshal(unit)
	}
	if err != nil {
		return fmt.Errorf("JSON encoding error: %w", err)
	}

	return writeOutput(output)
}

func runValidate(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	_, err = parser.Parse(input, &parser.Options{Tolerant: true})
	if err != nil {
		printDiagnostics(err)
		os.Exit(1)
	}

	fmt.Println("syntax OK")
	return nil
}

func runVersionDetect(cmd *cobra.Command, args []string) error {
	input, err := readInput(args)
	if err != nil {
		return err
	}

	constraints, err := version.DetectAll(input)
	if err != nil {
		return fmt.Errorf("version detection error: %w", err)
	}

	for _, c := range constraints {
		if c.Version != nil {
			fmt.Printf("pragma solidity %s -> %s\n", c.Raw, c.Version)
		} else {
			fmt.Printf("pragma solidity %s\n", c.Raw)
		}
	}
	return nil
}

func printDiagnostics(err error) {
	switch e := err.(type) {
	case *diagnostics.Bundle:
		for _, d := range e.Errors {
			fmt.Fprintf(os.Stderr, "%s %s: %s\n", d.Span, d.Code, d.Error())
		}
	case *diagnostics.Error:
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", e.Span, e.Code, e.Error())
	default:
		fmt.Fprintln(os.Stderr, err)
	}
}

func readInput(args []string) (string, error) {
	var reader io.Reader

	if len(args) == 0 || args[0] == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("cannot open file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}

	return string(content), nil
}

func writeOutput(data []byte) error {
	var writer io.Writer

	if outputFile == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}

	if outputFile == "" {
		fmt.Println()
	}

	return nil
}
