//go:build !linux

package logger

// Terminal detection is only wired for Linux; elsewhere auto resolves to text.
func isTerminal(uintptr) bool {
	return false
}
