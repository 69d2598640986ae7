// Package apperrors defines the typed errors and process exit codes used
// across the application. The error taxonomy is deliberately small: only
// malformed command-line input is an error. Everything else the run can
// encounter (step-cap hits, range exhaustion, histogram clamping) is a policy
// outcome handled by clamping or dropping, never by signaling failure.
package apperrors
