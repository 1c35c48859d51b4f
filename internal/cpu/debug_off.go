//go:build !gbdebug

package cpu

const debugChecks = false
