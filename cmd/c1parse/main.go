package main

import (
	"fmt"
	"io"
	"os"

	"github.com/raymyers/c1parse/pkg/config"
	"github.com/raymyers/c1parse/pkg/lexer"
	"github.com/raymyers/c1parse/pkg/logging"
	"github.com/raymyers/c1parse/pkg/parser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	errors "gopkg.in/src-d/go-errors.v1"
)

var version = "0.1.0"

// stdinName is the file argument that reads the source from stdin
const stdinName = "-"

// Command line options
var (
	configPath string
	maxDepth   int
	logLevel   string
	logFormat  string
	dTokens    bool // dump the token stream instead of parsing
)

var (
	// ErrReadSource is returned when an input file cannot be read.
	ErrReadSource = errors.NewKind("cannot read %s")
	// ErrRejected is returned when at least one input is not a C1 program.
	ErrRejected = errors.NewKind("%d of %d inputs rejected")
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Accept single-dash debug flags such as -dtokens
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the debug flags that also accept a single dash
var debugFlagNames = []string{"dtokens"}

// normalizeFlags converts single-dash debug flags like -dtokens to --dtokens
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "c1parse [file...]",
		Short: "c1parse checks C1 source files against the C1 grammar",
		Long: `c1parse is a syntax recognizer for C1, a small C-like teaching
language. Each file is accepted or rejected; a rejection reports the
first syntax error with its line. Use "-" to read from stdin.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				fmt.Fprintf(errOut, "c1parse: %v\n", err)
				return err
			}
			log, err := logging.New(errOut, cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				fmt.Fprintf(errOut, "c1parse: %v\n", err)
				return err
			}

			if dTokens {
				return doTokens(args, cmd.InOrStdin(), out, errOut)
			}
			return doParse(args, cmd.InOrStdin(), cfg, log, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringVar(&configPath, "config", "", "Read settings from a TOML file")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "Maximum block and expression nesting")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warning, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Log format (text or json)")
	rootCmd.Flags().BoolVarP(&dTokens, "dtokens", "", false, "Dump the token stream")

	return rootCmd
}

// loadConfig merges the config file, the environment and the flags that
// were set explicitly, in that order, and validates only the merged result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Read(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.Parser.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readSource returns the contents of filename, or of in for "-"
func readSource(filename string, in io.Reader) (string, error) {
	var content []byte
	var err error
	if filename == stdinName {
		content, err = io.ReadAll(in)
	} else {
		content, err = os.ReadFile(filename)
	}
	if err != nil {
		return "", ErrReadSource.Wrap(err, displayName(filename))
	}
	return string(content), nil
}

func displayName(filename string) string {
	if filename == stdinName {
		return "<stdin>"
	}
	return filename
}

// doParse recognizes every file and reports one line per file
func doParse(filenames []string, in io.Reader, cfg *config.Config, log *logrus.Logger, out, errOut io.Writer) error {
	rejected := 0
	for _, filename := range filenames {
		content, err := readSource(filename, in)
		if err != nil {
			fmt.Fprintf(errOut, "c1parse: %v\n", err)
			return err
		}

		name := displayName(filename)
		entry := log.WithField("file", name)
		if err := parser.Parse(content, cfg.ParserOptions(entry)...); err != nil {
			rejected++
			if se, ok := err.(*parser.SyntaxError); ok {
				fmt.Fprintf(errOut, "%s:%d:%d: %v\n", name, se.Line, se.Column, se)
				entry.WithField("kind", se.Kind.String()).Info("rejected")
			} else {
				fmt.Fprintf(errOut, "%s: %v\n", name, err)
			}
			continue
		}
		entry.Info("accepted")
		fmt.Fprintf(out, "%s: ok\n", name)
	}

	if rejected > 0 {
		return ErrRejected.New(rejected, len(filenames))
	}
	return nil
}

// doTokens writes the token stream of every file, one token per line
func doTokens(filenames []string, in io.Reader, out, errOut io.Writer) error {
	rejected := 0
	for _, filename := range filenames {
		content, err := readSource(filename, in)
		if err != nil {
			fmt.Fprintf(errOut, "c1parse: %v\n", err)
			return err
		}

		name := displayName(filename)
		for _, tok := range lexer.Tokenize(content) {
			if tok.Type == lexer.TokenError {
				rejected++
				fmt.Fprintf(errOut, "%s:%d:%d: invalid lexeme %q\n", name, tok.Line, tok.Column, tok.Literal)
				break
			}
			fmt.Fprintf(out, "%s:%d:%d\t%s\t%q\n", name, tok.Line, tok.Column, tok.Type, tok.Literal)
		}
	}

	if rejected > 0 {
		return ErrRejected.New(rejected, len(filenames))
	}
	return nil
}
