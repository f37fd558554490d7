// Package logx configures ctask's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller) and on stderr,
//     so it never interleaves with the interactive menu on stdout
//   - File output JSON-structured
//   - Noisy call sites rate limited (Logger.Limited)
package logx
