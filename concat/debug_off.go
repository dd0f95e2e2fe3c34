//go:build !concatdebug

package concat

const debugChecks = false
