package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/neurlang/dualnum/dual"
	"github.com/neurlang/dualnum/expr"
	"github.com/neurlang/dualnum/vector"
)

func derive(t *testing.T, args ...string) (string, error) {
	t.Helper()
	o, err := parseFlags(args, io.Discard)
	require.NoError(t, err)
	var out bytes.Buffer
	err = run(o, &out, zaptest.NewLogger(t))
	return out.String(), err
}

func parseLine(t *testing.T, line string) (x, value, derivative float64) {
	t.Helper()
	fields := strings.Split(line, "\t")
	require.Len(t, fields, 3, line)
	var nums [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		require.NoError(t, err, line)
		nums[i] = v
	}
	return nums[0], nums[1], nums[2]
}

func TestDerivePoint(t *testing.T) {
	out, err := derive(t, "-expr", "sin(x) + log(x)", "-x", "1.5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	x, value, derivative := parseLine(t, lines[0])
	assert.Equal(t, 1.5, x)
	assert.InDelta(t, math.Sin(1.5)+math.Log(1.5), value, 1e-12)
	assert.InDelta(t, math.Cos(1.5)+1/1.5, derivative, 1e-12)
}

func TestDeriveRangeWithCheck(t *testing.T) {
	out, err := derive(t, "-expr", "exp(x) + sqrt(x)", "-from", "0.1", "-to", "5", "-step", "0.1", "-check")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 50)
	x, _, derivative := parseLine(t, lines[49])
	assert.InDelta(t, 5, x, 1e-9)
	assert.InDelta(t, math.Exp(x)+1/(2*math.Sqrt(x)), derivative, 1e-9)
}

func TestDeriveEveryKernel(t *testing.T) {
	previous := dual.KernelName()
	t.Cleanup(func() { _ = dual.UseKernel(previous) })

	for _, kernel := range dual.Kernels() {
		t.Run(kernel, func(t *testing.T) {
			_, err := derive(t, "-expr", "atan(x) * tanh(x) / (1 + x*x)", "-from", "-2", "-to", "2", "-step", "0.25", "-kernel", kernel, "-check")
			require.NoError(t, err)
			assert.Equal(t, kernel, dual.KernelName())
		})
	}
}

func TestDeriveErrors(t *testing.T) {
	_, err := derive(t, "-expr", "sin(")
	assert.ErrorIs(t, err, expr.ErrSyntax)

	_, err = derive(t, "-kernel", "cuda")
	assert.ErrorIs(t, err, dual.ErrUnknownKernel)

	_, err = derive(t, "-expr", "log(x)", "-from", "-1", "-to", "1")
	assert.ErrorIs(t, err, dual.ErrDomain)
	assert.Contains(t, err.Error(), "x=-1")

	_, err = derive(t, "-from", "2", "-to", "1")
	assert.Error(t, err)

	_, err = derive(t, "-step", "0")
	assert.Error(t, err)

	for _, args := range [][]string{
		{"-from", "NaN", "-to", "1"},
		{"-from", "0", "-to", "NaN"},
		{"-step", "NaN"},
		{"-from", "-Inf", "-to", "1"},
		{"-to", "+Inf"},
		{"-step", "Inf"},
	} {
		_, err = derive(t, args...)
		assert.ErrorContains(t, err, "bad range", args)
	}
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.False(t, o.ranged)
	xs, err := o.points()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5}, xs)

	o, err = parseFlags([]string{"-to", "0.5"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, o.ranged)
	xs, err = o.points()
	require.NoError(t, err)
	assert.Len(t, xs, 5)

	_, err = parseFlags([]string{"extra"}, io.Discard)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-tol", "0"}, io.Discard)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestCheckNumericCatchesWrongDerivative(t *testing.T) {
	f := expr.MustCompile("x*x")
	xs := []float64{1, 2}
	out, err := derive(t, "-expr", "x*x", "-from", "1", "-to", "2", "-step", "1")
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// a tampered result must be reported
	v, err := vector.Evaluate(f, xs)
	require.NoError(t, err)
	v.Dual[1] = 5
	assert.Equal(t, 1, checkNumeric(f, xs, v, 1e-6, zaptest.NewLogger(t)))
}

// TestCheckNumericCountsEveryPoint runs the finite-difference check over many points at once.
func TestCheckNumericCountsEveryPoint(t *testing.T) {
	vector.SetParallelism(8)
	t.Cleanup(func() { vector.SetParallelism(0) })

	f := expr.MustCompile("sin(x) + x^2")
	xs := make([]float64, 500)
	for i := range xs {
		xs[i] = float64(i+1) / 100
	}
	v, err := vector.Evaluate(f, xs)
	require.NoError(t, err)
	assert.Zero(t, checkNumeric(f, xs, v, 1e-6, zaptest.NewLogger(t)))

	for i := 0; i < len(xs); i += 50 {
		v.Dual[i] += 1
	}
	assert.Equal(t, 10, checkNumeric(f, xs, v, 1e-6, zaptest.NewLogger(t)))
}
