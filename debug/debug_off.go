//go:build !debug

package debug

// Debug is false in production builds: the synthesiser skips its expensive
// self-checks and stack traces are trimmed to caller-relevant frames.
const Debug = false
