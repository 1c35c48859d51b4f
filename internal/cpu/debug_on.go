//go:build gbdebug

package cpu

// Built with -tags gbdebug, register index violations panic instead of falling back.
const debugChecks = true
