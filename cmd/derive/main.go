package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/neurlang/dualnum/dual"
	"github.com/neurlang/dualnum/expr"
	"github.com/neurlang/dualnum/parallel"
	"github.com/neurlang/dualnum/vector"
)

const maxPoints = 1 << 24

// ErrCheck is returned when -check finds a derivative that disagrees.
var ErrCheck = errors.New("derivative check failed")

type options struct {
	expr       string
	x          float64
	from, to   float64
	step       float64
	ranged     bool
	kernel     string
	check      bool
	tol        float64
	verbose    bool
	cpuprofile string
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("derive", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&o.expr, "expr", "sin(x) + log(x)", "expression of x to differentiate")
	fs.Float64Var(&o.x, "x", 1.5, "evaluation point")
	fs.Float64Var(&o.from, "from", 0.1, "first point of a range")
	fs.Float64Var(&o.to, "to", 1, "last point of a range")
	fs.Float64Var(&o.step, "step", 0.1, "distance between range points")
	fs.StringVar(&o.kernel, "kernel", "", "kernel to evaluate on, default picks the fastest the CPU supports")
	fs.BoolVar(&o.check, "check", false, "compare against finite differences and the other kernels")
	fs.Float64Var(&o.tol, "tol", 1e-6, "relative tolerance of -check")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.StringVar(&o.cpuprofile, "cpuprofile", "", "write a CPU profile (usable as default.pgo) to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments %q", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "from", "to", "step":
			o.ranged = true
		}
	})
	if o.tol <= 0 {
		return nil, fmt.Errorf("tolerance must be positive, got %g", o.tol)
	}
	return o, nil
}

// points lists the evaluation points, from and to inclusive.
func (o *options) points() ([]float64, error) {
	if !o.ranged {
		return []float64{o.x}, nil
	}
	if !finite(o.from) || !finite(o.to) || !finite(o.step) || !(o.step > 0) || o.to < o.from {
		return nil, fmt.Errorf("bad range from %g to %g step %g", o.from, o.to, o.step)
	}
	n := math.Floor((o.to-o.from)/o.step+1e-9) + 1
	if math.IsNaN(n) || n > maxPoints {
		return nil, fmt.Errorf("range has %g points, at most %d allowed", n, maxPoints)
	}
	xs := make([]float64, int(n))
	for i := range xs {
		xs[i] = o.from + float64(i)*o.step
	}
	return xs, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func run(o *options, stdout io.Writer, log *zap.Logger) error {
	if o.kernel != "" {
		if err := dual.UseKernel(o.kernel); err != nil {
			return err
		}
	}
	log.Debug("evaluating",
		zap.String("expr", o.expr),
		zap.String("kernel", dual.KernelName()),
		zap.Strings("kernels", dual.Kernels()),
		zap.Int("parallelism", vector.Parallelism()))

	f, err := expr.Compile(o.expr)
	if err != nil {
		return err
	}
	xs, err := o.points()
	if err != nil {
		return err
	}
	v, err := vector.Evaluate(f, xs)
	if err != nil {
		var ie *vector.IndexError
		if errors.As(err, &ie) {
			return fmt.Errorf("at x=%g: %w", xs[ie.Index], ie.Err)
		}
		return err
	}
	for i, x := range xs {
		fmt.Fprintf(stdout, "%g\t%g\t%g\n", x, v.Real[i], v.Dual[i])
	}
	if !o.check {
		return nil
	}

	failures := checkNumeric(f, xs, v, o.tol, log)
	n, err := checkKernels(f, xs, v, o.tol, log)
	if err != nil {
		return err
	}
	failures += n
	if failures > 0 {
		return fmt.Errorf("%w: %d mismatches", ErrCheck, failures)
	}
	log.Info("check passed", zap.Int("points", len(xs)), zap.Strings("kernels", dual.Kernels()))
	return nil
}

func within(got, want, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(got, want, tol, tol)
}

// checkNumeric compares every derivative against central finite differences of the value.
func checkNumeric(f dual.Func, xs []float64, v *vector.Vector, tol float64, log *zap.Logger) int {
	value := func(x float64) float64 {
		y, err := f(dual.Constant(x))
		if err != nil {
			return math.NaN()
		}
		return y.Real()
	}
	settings := &fd.Settings{Formula: fd.Central}
	var mismatches atomic.Int64
	parallel.ForEach(len(xs), vector.Parallelism(), func(i int) {
		x := xs[i]
		numeric := fd.Derivative(value, x, settings)
		if math.IsNaN(numeric) {
			log.Debug("no finite difference near domain edge", zap.Float64("x", x))
			return
		}
		if !within(v.Dual[i], numeric, tol) {
			log.Warn("derivative disagrees with finite differences",
				zap.Float64("x", x),
				zap.Float64("derivative", v.Dual[i]),
				zap.Float64("numeric", numeric))
			mismatches.Add(1)
		}
	})
	return int(mismatches.Load())
}

// checkKernels evaluates again on every other kernel and compares both components.
func checkKernels(f dual.Func, xs []float64, v *vector.Vector, tol float64, log *zap.Logger) (failures int, err error) {
	active := dual.KernelName()
	defer func() {
		if restoreErr := dual.UseKernel(active); err == nil {
			err = restoreErr
		}
	}()

	for _, name := range dual.Kernels() {
		if name == active {
			continue
		}
		if err := dual.UseKernel(name); err != nil {
			return failures, err
		}
		w, err := vector.Evaluate(f, xs)
		if err != nil {
			return failures, fmt.Errorf("kernel %s: %w", name, err)
		}
		for i, x := range xs {
			if !within(w.Real[i], v.Real[i], tol) || !within(w.Dual[i], v.Dual[i], tol) {
				log.Warn("kernels disagree",
					zap.Float64("x", x),
					zap.String(active, fmt.Sprint(v.At(i))),
					zap.String(name, fmt.Sprint(w.At(i))))
				failures++
			}
		}
		log.Debug("kernel compared", zap.String("kernel", name), zap.Int("points", len(xs)))
	}
	return failures, nil
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := newLogger(o.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	stop, err := startProfile(o.cpuprofile)
	if err != nil {
		log.Fatal("cpu profile", zap.Error(err))
	}

	err = run(o, os.Stdout, log)
	if stopErr := stop(); stopErr != nil {
		log.Warn("cpu profile", zap.Error(stopErr))
	}
	if err != nil {
		log.Error("derive failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}
