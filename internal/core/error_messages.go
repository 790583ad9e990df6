// Package core coordinates transform runs and keeps them addressable for
// export and review.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors, they can quote the error code to
// support staff for faster diagnosis.
//
// Error codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
// Errors related to the pasted or uploaded input document:
//
//	FILE001 - Empty input: No content was provided
//	          Action: Paste or upload the tracker export before transforming
//	          Patterns: "empty input"
//
//	FILE002 - Missing header row: Input has no header plus data rows
//	          Action: Include the column header line and at least one data row
//	          Patterns: "missing header row"
//
//	FILE003 - Input too large: Input exceeds the configured size limit
//	          Action: Split the export into smaller batches
//	          Patterns: "input too large"
//
//	FILE004 - No file: No file was selected
//	          Action: Choose an export file or paste its contents
//	          Patterns: "no file provided"
//
// # Validation Errors (VAL001-VAL099)
//
// Errors related to the shape and content of the export:
//
//	VAL001 - Missing column: A required column is absent from the header
//	         Action: Re-export with the full column set from the tracker
//	         Patterns: "missing required column"
//
//	VAL002 - No valid rows: Every data row was empty after normalization
//	         Action: Check that the export contains populated request rows
//	         Patterns: "no valid data rows"
//
// # Run Errors (RUN001-RUN099)
//
// Errors related to stored run lookup and lifecycle:
//
//	RUN001 - Run not found: The requested run ID is unknown or evicted
//	         Action: Re-run the transform to get a fresh run ID
//	         Patterns: "run not found"
//
//	RUN002 - Request cancelled: The request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	RUN003 - Request timeout: The request timed out
//	         Action: Try a smaller input or check your connection
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. Patterns are matched using strings.Contains, first match wins.
//
// To add a new error pattern:
//  1. Choose the appropriate category and code range
//  2. Add the pattern in the correct position (specific before general)
//  3. Update the package documentation at the top of this file
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE004)
	// These errors describe problems with the input document itself.
	// =========================================================================
	{
		pattern: "empty input",
		msg: UserMessage{
			Message: "No content was provided",
			Action:  "Paste or upload the tracker export before transforming",
			Code:    "FILE001",
		},
	},
	{
		pattern: "missing header row",
		msg: UserMessage{
			Message: "Input needs a header line and at least one data row",
			Action:  "Include the column header line and at least one data row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "input too large",
		msg: UserMessage{
			Message: "Input exceeds the maximum size limit",
			Action:  "Split the export into smaller batches",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose an export file or paste its contents",
			Code:    "FILE004",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL002)
	// These errors describe exports that parsed but failed validation.
	// =========================================================================
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A required column is missing from the export",
			Action:  "Re-export with the full column set from the tracker",
			Code:    "VAL001",
		},
	},
	{
		pattern: "no valid data rows",
		msg: UserMessage{
			Message: "Every data row was empty after normalization",
			Action:  "Check that the export contains populated request rows",
			Code:    "VAL002",
		},
	},

	// =========================================================================
	// Run Errors (RUN001-RUN003)
	// These errors occur when looking up stored runs or serving requests.
	// =========================================================================
	{
		pattern: "run not found",
		msg: UserMessage{
			Message: "Transform run not found",
			Action:  "Re-run the transform to get a fresh run ID",
			Code:    "RUN001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "RUN002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller input or check your connection",
			Code:    "RUN003",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be shown
// to users. Returns true for specific patterns, false for the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging while providing a clean
// message for users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError by mapping a technical error to a
// user-friendly message. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
