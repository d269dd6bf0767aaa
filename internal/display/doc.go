// Package display renders user-facing jvmtune output: described settings as an
// aligned table and warnings about current values.
//
// # Description Tables
//
//	display.WriteDescription(os.Stdout, descr, colored)
//
// prints one row per setting in configured order:
//
//	SETTING      VALUE  MIN  MAX  STEP   UNIT  DEFAULT
//	MaxHeapSize  4      1    6    0.125  GiB   -
//
// # Warning Messages
//
// Decoded values are reported as found, without bound checks. Use
// WarnOutOfRange to flag values the configured range would not produce:
//
//	if w := display.WarnOutOfRange(descr); w != nil {
//	    w.Display(os.Stderr, colored)
//	}
//
// Colors come from fatih/color and are only emitted when the caller asks
// for them, so every function is testable through an io.Writer.
package display
