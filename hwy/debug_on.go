//go:build hwydebug

package hwy

// DebugChecks reports whether precondition assertions are compiled in.
const DebugChecks = true
