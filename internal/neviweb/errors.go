package neviweb

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// Error types for Neviweb cloud operations

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a transport-level error (connection reset, unreachable, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeAuth indicates the service rejected the credentials
	ErrTypeAuth
	// ErrTypeServer indicates the service answered but not usefully
	// (non-200 status, or a structured error code other than bad login)
	ErrTypeServer
	// ErrTypeParse indicates a parsing error (malformed JSON, missing fields)
	ErrTypeParse
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the service refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeServer:
		return "Service Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ServiceError represents an error that occurred while talking to the
// Neviweb cloud service
type ServiceError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Code       string    // Structured error code from the service (if any)
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether resubmitting the same input may succeed
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a more
// specific error type
func ClassifyNetworkError(err error) *ServiceError {
	if err == nil {
		return nil
	}

	// Check for timeout errors
	if os.IsTimeout(err) {
		return &ServiceError{
			Type:      ErrTypeTimeout,
			Message:   "Request timed out",
			Err:       err,
			Retryable: true,
		}
	}

	// Check for DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ServiceError{
			Type:      ErrTypeDNS,
			Message:   fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:       err,
			Retryable: false,
		}
	}

	// Check for connection-level errors
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &ServiceError{
				Type:      ErrTypeConnectionRefused,
				Message:   "Service refused connection",
				Err:       err,
				Retryable: true,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) || errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &ServiceError{
				Type:      ErrTypeNetwork,
				Message:   "Service unreachable",
				Err:       err,
				Retryable: true,
			}
		}
	}

	// Check for URL errors
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Recursively classify the underlying error
		return ClassifyNetworkError(urlErr.Err)
	}

	// Generic network error
	return &ServiceError{
		Type:      ErrTypeNetwork,
		Message:   "Network error occurred",
		Err:       err,
		Retryable: true,
	}
}

// NewNetworkError creates a transport-level error with automatic classification
func NewNetworkError(message string, err error) *ServiceError {
	classified := ClassifyNetworkError(err)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &ServiceError{
		Type:      ErrTypeNetwork,
		Message:   message,
		Err:       err,
		Retryable: true,
	}
}

// NewAuthError creates an authentication error
func NewAuthError(message string) *ServiceError {
	return &ServiceError{
		Type:       ErrTypeAuth,
		Message:    message,
		StatusCode: http.StatusOK,
		Code:       BadLoginCode,
		Retryable:  false,
	}
}

// NewHTTPError creates an error for a non-200 response
func NewHTTPError(statusCode int, message string) *ServiceError {
	retryable := statusCode >= 500 // Server errors may clear up
	return &ServiceError{
		Type:       ErrTypeServer,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  retryable,
	}
}

// NewServiceCodeError creates an error for a structured error payload
// whose code is something other than bad login
func NewServiceCodeError(code string) *ServiceError {
	return &ServiceError{
		Type:      ErrTypeServer,
		Message:   fmt.Sprintf("service returned error code %s", code),
		Code:      code,
		Retryable: false,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *ServiceError {
	return &ServiceError{
		Type:      ErrTypeParse,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

// IsNetworkError checks if an error is a transport error (including
// timeout, connection refused, DNS, etc.)
func IsNetworkError(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Type == ErrTypeNetwork ||
			svcErr.Type == ErrTypeTimeout ||
			svcErr.Type == ErrTypeConnectionRefused ||
			svcErr.Type == ErrTypeDNS
	}
	return false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Type == ErrTypeAuth
	}
	return false
}

// IsServerError checks if an error is a service-side error
func IsServerError(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Type == ErrTypeServer
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Type == ErrTypeParse
	}
	return false
}

// IsConnectError reports whether the error belongs to the broad
// "could not get a good answer from the service" family: everything
// except bad credentials and truly unknown failures.
func IsConnectError(err error) bool {
	svcErr, ok := err.(*ServiceError)
	if !ok {
		return false
	}
	switch svcErr.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused,
		ErrTypeDNS, ErrTypeServer, ErrTypeParse:
		return true
	default:
		return false
	}
}

// IsRetryable checks if resubmitting the same input may succeed
func IsRetryable(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	svcErr, ok := err.(*ServiceError)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch svcErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The Neviweb service did not respond in time.",
			"Troubleshooting:",
			"  • Check your internet connection",
			"  • The service may be under heavy load - try again in a minute",
			"  • If you use a VPN or proxy, try disabling it",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The connection to the Neviweb service was refused.",
			"Troubleshooting:",
			"  • The service may be down for maintenance",
			"  • Check whether a firewall is blocking outbound HTTPS",
			"  • Verify the host setting if you overrode it",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the Neviweb service hostname.",
			"Troubleshooting:",
			"  • Check your internet connection",
			"  • Check your DNS settings",
			"  • Verify the host setting if you overrode it",
		}, "\n")

	case ErrTypeAuth:
		return strings.Join([]string{
			"The Neviweb service rejected the credentials.",
			"Troubleshooting:",
			"  • Check the username and password (sign in at neviweb.com to verify)",
			"  • Accounts lock after repeated failures - wait before retrying",
			"  • Passwords are case-sensitive",
		}, "\n")

	case ErrTypeNetwork:
		return strings.Join([]string{
			"Network communication failed.",
			"Troubleshooting:",
			"  • Check your internet connection",
			"  • Try again in a minute",
			"  • If you use a VPN or proxy, try disabling it",
		}, "\n")

	case ErrTypeServer:
		if svcErr.Code != "" {
			return fmt.Sprintf("The service returned error code %s. "+
				"Sign in at neviweb.com to check your account status.", svcErr.Code)
		}
		if svcErr.StatusCode >= 500 {
			return strings.Join([]string{
				fmt.Sprintf("The service returned an error (HTTP %d).", svcErr.StatusCode),
				"This is a problem on the service side.",
				"Troubleshooting:",
				"  • Try again in a few minutes",
				"  • Check the service status page",
			}, "\n")
		}
		return fmt.Sprintf("The service returned HTTP error %d.", svcErr.StatusCode)

	case ErrTypeParse:
		return strings.Join([]string{
			"Failed to parse the service's response.",
			"The API may have changed or a proxy may be rewriting traffic.",
			"Troubleshooting:",
			"  • Try again in a few minutes",
			"  • Check for a newer version of this tool",
		}, "\n")

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	svcErr, ok := err.(*ServiceError)
	if !ok {
		return err.Error()
	}

	switch svcErr.Type {
	case ErrTypeTimeout:
		return "Service not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Connection refused - service may be down"
	case ErrTypeDNS:
		return "Cannot resolve service hostname"
	case ErrTypeAuth:
		return "Invalid username or password"
	case ErrTypeNetwork:
		return "Network error - check internet connection"
	case ErrTypeServer:
		if svcErr.Code != "" {
			return fmt.Sprintf("Service error (%s)", svcErr.Code)
		}
		return fmt.Sprintf("Service error (HTTP %d)", svcErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse service response"
	default:
		return svcErr.Message
	}
}
