// Package main provides a command line tool that differentiates an expression of x.
// It prints x, f(x) and f'(x) at a single point or over a range, and with -check
// compares each derivative against central finite differences and against every
// other compiled kernel.
//
// Usage:
//
//	derive -expr 'sin(x) + log(x)' -x 1.5
//	derive -expr 'exp(x) + sqrt(x)' -from 0.1 -to 50 -step 0.1 -check
package main
