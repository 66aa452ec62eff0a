// Package constants centralizes defaults shared across the CLI.
//
// File permissions, request timeouts, body caps, and the detection confidence
// threshold live here so cmd/ and internal/ reference one value without
// introducing import cycles.
package constants
