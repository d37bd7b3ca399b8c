package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cooktime/calculator"
	"cooktime/oven"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", "../conf/config.ini", "--log-level", "warn"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEstimateCommand(t *testing.T) {
	out, err := run(t, "estimate", "--length", "4", "--thickness", "3", "--oven", "375", "--material", "Pork (Lean)")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Pork (Lean): "), out)
	assert.Contains(t, out, "minutes!")
}

func TestEstimateCommand_All(t *testing.T) {
	out, err := run(t, "estimate", "--length", "2", "--thickness", "2", "--material", "Chicken", "--all")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Salmon: "))
	assert.True(t, strings.HasPrefix(lines[4], "Veal: "))
}

func TestEstimateCommand_Errors(t *testing.T) {
	_, err := run(t, "estimate", "--material", "Veal Chops", "--all=false")
	assert.Error(t, err)

	_, err = run(t, "estimate", "--material", "Veal", "--length", "0.02")
	assert.Error(t, err)

	_, err = run(t, "--log-level", "loud", "estimate", "--length", "5")
	assert.Error(t, err)
}

var errClosed = errors.New("closed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errClosed }

func TestEstimate_WriteError(t *testing.T) {
	s := oven.NewSettings()
	s.SetLength(2)
	s.SetThickness(2)
	calc := calculator.NewCalculator(calculator.DefaultConfig())

	err := estimateOne(context.Background(), failingWriter{}, calc, *s)
	assert.True(t, errors.Is(err, errClosed), "got %v", err)

	err = estimateAll(context.Background(), failingWriter{}, calculator.NewExecutor(calc, 2), *s)
	assert.True(t, errors.Is(err, errClosed), "got %v", err)
}
