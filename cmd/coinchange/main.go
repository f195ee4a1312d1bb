package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/on-the-ground/coinchange/coins"
	"github.com/on-the-ground/coinchange/config"
	"github.com/on-the-ground/coinchange/internal/configkeys"
	"github.com/on-the-ground/coinchange/internal/log"
	"github.com/on-the-ground/coinchange/solver"
)

// flagKeys maps flags that override configuration to their keys.
var flagKeys = map[string]string{
	"algo":         configkeys.ConfigSolverAlgorithm,
	"workers":      configkeys.ConfigSolverWorkers,
	"max-depth":    configkeys.ConfigSolverMaxRecursionDepth,
	"max-enum":     configkeys.ConfigSolverMaxEnumeration,
	"memo-backend": configkeys.ConfigSolverMemoBackend,
	"dedup":        configkeys.ConfigSolverDedup,
	"log-level":    configkeys.ConfigLogLevel,
}

// cliFlags holds the flags read directly by main. Flags listed in flagKeys
// are applied through loadConfig, so only explicitly set ones override the
// environment.
type cliFlags struct {
	table       bool
	verify      bool
	plain       bool
	interactive bool
}

func registerFlags(fs *flag.FlagSet) *cliFlags {
	fs.String("algo", "", "Algorithm: recursive, iterative, memoized, tabulated, parallel, rolling")
	fs.Int("workers", 0, "Goroutines for the parallel table fill")
	fs.Int("max-depth", 0, "Refuse recursive algorithms beyond this depth (0 disables)")
	fs.Int("max-enum", 0, "Refuse recursive and iterative when the count exceeds this (0 disables)")
	fs.String("memo-backend", "", "Memo store of the memoized algorithm: table, ristretto")
	fs.Bool("dedup", false, "Collapse repeated denominations")
	fs.String("log-level", "", "Log level: debug, info, warn, error")

	f := &cliFlags{}
	fs.BoolVar(&f.table, "table", false, "Print the full table (tabulated and parallel only)")
	fs.BoolVar(&f.verify, "verify", false, "Cross-check every algorithm; recursive and iterative are skipped above -max-enum")
	fs.BoolVar(&f.plain, "plain", false, "Never style output")
	fs.BoolVar(&f.interactive, "i", false, "Interactive mode with TUI")
	return f
}

type output struct {
	table  bool
	verify bool
	styled bool
}

func main() {
	flags := registerFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: coinchange [flags] value numCoins c1 ... cM")
		fmt.Fprintln(os.Stderr, "       echo 'value numCoins c1 ... cM' | coinchange [flags]")
		fmt.Fprintln(os.Stderr, "       coinchange -i  (interactive mode)")
		flag.PrintDefaults()
	}
	flag.Parse()

	scope, err := loadConfig(flag.CommandLine, os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.New(config.MustGet[string](scope, configkeys.ConfigLogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync(logger)

	alg, s, err := newSolver(scope, solverLogger(logger, flags.interactive))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flags.interactive {
		if err := runInteractive(s, alg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	out := output{
		table:  flags.table,
		verify: flags.verify,
		styled: !flags.plain && term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := run(context.Background(), s, alg, out, flag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// solverLogger silences the solver while the TUI owns the terminal.
func solverLogger(logger *zap.Logger, interactive bool) *zap.Logger {
	if interactive {
		return zap.NewNop()
	}
	return logger
}

// loadConfig layers explicitly set flags over the environment over defaults.
func loadConfig(fs *flag.FlagSet, lookupEnv func(string) (string, bool)) (*config.Scope, error) {
	env, err := config.FromEnv(config.Defaults(), lookupEnv)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	values := make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if getter, ok := f.Value.(flag.Getter); ok {
			values[key] = getter.Get()
		}
	})
	return config.NewScope(env, values), nil
}

func newSolver(scope *config.Scope, logger *zap.Logger) (solver.Algorithm, *solver.Solver, error) {
	algName, err := config.Get[string](scope, configkeys.ConfigSolverAlgorithm)
	if err != nil {
		return "", nil, err
	}
	alg, err := solver.ParseAlgorithm(algName)
	if err != nil {
		return "", nil, err
	}
	opts, err := solver.OptionsFrom(scope)
	if err != nil {
		return "", nil, err
	}
	return alg, solver.New(opts, logger), nil
}

// readRequest takes positional args, or stdin when there are none.
func readRequest(args []string, stdin io.Reader) (solver.Request, error) {
	fields := args
	if len(fields) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return solver.Request{}, fmt.Errorf("read stdin: %w", err)
		}
		fields = strings.Fields(string(data))
	}

	target, raw, err := coins.Parse(fields)
	if err != nil {
		return solver.Request{}, err
	}
	return solver.Request{Target: target, Coins: raw}, nil
}

func run(ctx context.Context, s *solver.Solver, alg solver.Algorithm, out output, args []string, stdin io.Reader, stdout io.Writer) error {
	req, err := readRequest(args, stdin)
	if err != nil {
		return err
	}

	if out.verify {
		results, err := s.CrossCheck(ctx, req)
		if err != nil {
			return err
		}
		return renderCrossCheck(stdout, results, out.styled)
	}

	res, err := s.Solve(ctx, alg, req)
	if err != nil {
		return err
	}
	if out.table {
		if res.Table == nil {
			return fmt.Errorf("-table needs the tabulated or parallel algorithm, not %s", alg)
		}
		if err := renderTable(stdout, *res.Table, out.styled); err != nil {
			return err
		}
	}
	return renderCount(stdout, res.Count, out.styled)
}
