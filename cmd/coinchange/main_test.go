package main

import (
	"context"
	"flag"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/on-the-ground/coinchange/coins"
	"github.com/on-the-ground/coinchange/config"
	"github.com/on-the-ground/coinchange/history"
	"github.com/on-the-ground/coinchange/internal/configkeys"
	"github.com/on-the-ground/coinchange/internal/log"
	"github.com/on-the-ground/coinchange/solver"
)

func noEnv(string) (string, bool) { return "", false }

func testFlagSet(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("coinchange", flag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestRegisterFlags_MainFlags(t *testing.T) {
	fs := flag.NewFlagSet("coinchange", flag.ContinueOnError)
	flags := registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"-i", "-table", "-plain", "5", "1", "1"}))

	assert.Equal(t, cliFlags{table: true, plain: true, interactive: true}, *flags)
	assert.Equal(t, []string{"5", "1", "1"}, fs.Args())
}

func TestLoadConfig_MemoBackendAndEnumerationFlags(t *testing.T) {
	scope, err := loadConfig(testFlagSet(t, "-memo-backend", "ristretto", "-max-enum", "50"), noEnv)
	require.NoError(t, err)

	opts, err := solver.OptionsFrom(scope)
	require.NoError(t, err)
	assert.Equal(t, solver.MemoRistretto, opts.MemoBackend)
	assert.Equal(t, uint64(50), opts.MaxEnumeration)
}

func TestSolverLogger_SilentWhileInteractive(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	observed := zap.New(core)

	scope, err := loadConfig(testFlagSet(t), noEnv)
	require.NoError(t, err)
	alg, s, err := newSolver(scope, solverLogger(observed, true))
	require.NoError(t, err)

	store, err := history.New()
	require.NoError(t, err)
	m := newInteractiveModel(s, alg, store)
	m.inputs[0].SetValue("5")
	m.inputs[1].SetValue("1 2 3")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.NotNil(t, m.result)
	assert.Equal(t, 0, logs.Len())

	// outside the TUI the same logger is kept
	assert.Same(t, observed, solverLogger(observed, false))
}

func TestLoadConfig_FlagsOverrideEnvOverrideDefaults(t *testing.T) {
	env := func(name string) (string, bool) {
		switch name {
		case "COINCHANGE_ALGORITHM":
			return "rolling", true
		case "COINCHANGE_WORKERS":
			return "3", true
		}
		return "", false
	}

	scope, err := loadConfig(testFlagSet(t, "-workers", "9", "-table"), env)
	require.NoError(t, err)

	assert.Equal(t, "rolling", config.MustGet[string](scope, configkeys.ConfigSolverAlgorithm))
	assert.Equal(t, 9, config.MustGet[int](scope, configkeys.ConfigSolverWorkers))
	assert.Equal(t, "info", config.MustGet[string](scope, configkeys.ConfigLogLevel))
	assert.False(t, config.MustGet[bool](scope, configkeys.ConfigSolverDedup))
}

func TestLoadConfig_BadEnvironment(t *testing.T) {
	env := func(name string) (string, bool) {
		return "lots", name == "COINCHANGE_WORKERS"
	}
	_, err := loadConfig(testFlagSet(t), env)
	assert.ErrorContains(t, err, "COINCHANGE_WORKERS")
}

func TestNewSolver_UnknownAlgorithm(t *testing.T) {
	scope, err := loadConfig(testFlagSet(t, "-algo", "greedy"), noEnv)
	require.NoError(t, err)

	_, _, err = newSolver(scope, log.NewTest())
	assert.ErrorIs(t, err, solver.ErrUnknownAlgorithm)
}

func TestReadRequest(t *testing.T) {
	req, err := readRequest([]string{"5", "3", "3", "1", "2"}, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, solver.Request{Target: 5, Coins: []int{3, 1, 2}}, req)

	req, err = readRequest(nil, strings.NewReader("10 3\n1 5 10\n"))
	require.NoError(t, err)
	assert.Equal(t, solver.Request{Target: 10, Coins: []int{1, 5, 10}}, req)

	_, err = readRequest(nil, strings.NewReader("10 3 1"))
	assert.ErrorIs(t, err, coins.ErrMalformedInput)
}

func newTestSolver(t *testing.T) *solver.Solver {
	t.Helper()
	return solver.New(solver.Options{Workers: 2}, log.NewTest())
}

func TestRun_PrintsCount(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), newTestSolver(t), solver.Rolling, output{}, []string{"5", "3", "1", "2", "3"}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out.String())
}

func TestRun_PrintsTableThenCount(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), newTestSolver(t), solver.Tabulated, output{table: true}, []string{"3", "2", "2", "1"}, nil, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"1", "1", "1", "1", "1"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "1", "1", "2", "2"}, strings.Fields(lines[2]))
	assert.Equal(t, "2", lines[3])
}

func TestRun_StyledTableContainsCells(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), newTestSolver(t), solver.Parallel, output{table: true, styled: true}, []string{"5", "3", "1", "2", "3"}, nil, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "coin")
	assert.Contains(t, out.String(), "5")
}

func TestRun_TableNeedsATableAlgorithm(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), newTestSolver(t), solver.Rolling, output{table: true}, []string{"5", "1", "1"}, nil, &out)
	assert.ErrorContains(t, err, "-table needs")
}

func TestRun_Verify(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), newTestSolver(t), solver.Tabulated, output{verify: true}, []string{"10", "3", "10", "5", "1"}, nil, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, len(solver.Algorithms())+1)
	for i, alg := range solver.Algorithms() {
		fields := strings.Fields(lines[i])
		assert.Equal(t, string(alg), fields[0])
		assert.Equal(t, "4", fields[1])
	}
	assert.Equal(t, "4", lines[len(lines)-1])
}

func TestRun_InvalidInput(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), newTestSolver(t), solver.Tabulated, output{}, []string{"5", "2", "0", "3"}, nil, &out)
	assert.ErrorIs(t, err, coins.ErrNonPositiveCoin)
	assert.Empty(t, out.String())
}

func TestParseInputs(t *testing.T) {
	req, err := parseInputs(" 10 ", "1, 5 10")
	require.NoError(t, err)
	assert.Equal(t, solver.Request{Target: 10, Coins: []int{1, 5, 10}}, req)

	_, err = parseInputs("ten", "1")
	assert.ErrorContains(t, err, "value")

	_, err = parseInputs("10", "1 x")
	assert.ErrorContains(t, err, "coins")
}

func TestInteractiveModel_SolveAndRecord(t *testing.T) {
	store, err := history.New()
	require.NoError(t, err)
	m := newInteractiveModel(newTestSolver(t), solver.Tabulated, store)

	m.inputs[0].SetValue("5")
	m.inputs[1].SetValue("1 2 3")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, solvedMsg{}, msg)

	m.Update(msg)
	require.NoError(t, m.err)
	require.NotNil(t, m.result)
	assert.Equal(t, uint64(5), m.result.Count)
	require.Len(t, m.recent, 1)
	assert.Equal(t, "5:1,2,3", m.recent[0].Key)
	assert.Contains(t, m.View(), "5 ways to make 5")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.result)
	assert.Empty(t, m.inputs[0].Value())
}

func TestInteractiveModel_ShowsEarlierSolvesOfTheSameProblem(t *testing.T) {
	store, err := history.New()
	require.NoError(t, err)
	m := newInteractiveModel(newTestSolver(t), solver.Rolling, store)

	solve := func(target, denominations string) {
		m.inputs[0].SetValue(target)
		m.inputs[1].SetValue(denominations)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m.Update(cmd())
		require.NoError(t, m.err)
	}

	solve("10", "1 5 10")
	assert.Empty(t, m.earlier)

	solve("7", "2")
	solve("10", "10,5,1")
	require.Len(t, m.earlier, 1)
	assert.Equal(t, "10:1,5,10", m.earlier[0].Key)
	assert.Equal(t, uint64(4), m.earlier[0].Count)
	assert.Contains(t, m.View(), "earlier for this problem")
}

func TestInteractiveModel_InvalidInputShowsError(t *testing.T) {
	store, err := history.New()
	require.NoError(t, err)
	m := newInteractiveModel(newTestSolver(t), solver.Tabulated, store)

	m.inputs[0].SetValue("5")
	m.inputs[1].SetValue("0")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())
	assert.ErrorIs(t, m.err, coins.ErrNonPositiveCoin)
	assert.Contains(t, m.View(), "Error:")

	all, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInteractiveModel_TabSwitchesFocus(t *testing.T) {
	store, err := history.New()
	require.NoError(t, err)
	m := newInteractiveModel(newTestSolver(t), solver.Rolling, store)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focusIdx)
	assert.True(t, m.inputs[1].Focused())
	assert.False(t, m.inputs[0].Focused())
}
