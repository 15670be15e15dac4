// Package processor assembles a discovery run from command-line flags. It
// builds the provider chain and analyzer, restores or archives earlier
// output, drives the explorer and exports the result. This package serves
// as the main coordinator between all other components.
package processor
