// Package cli implements the vcheck command line tool.
//
// vcheck reads a YAML file of checks, evaluates every constraint declaration
// against its value with the built-in constraint kinds, and prints a report:
//
//	vcheck validate --file checks.yaml --format json --fail-on-violation
//	vcheck kinds
//
// Flag defaults come from VCHECK_* environment variables, see Settings.
package cli
