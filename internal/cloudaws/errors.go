package cloudaws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Category buckets an AWS SDK error into the handful of shapes the
// orchestrator and auditors actually branch on.
type Category string

const (
	CategoryAuth       Category = "AUTH"
	CategoryPermission Category = "PERMISSION"
	CategoryThrottled  Category = "THROTTLED"
	CategoryNotFound   Category = "NOT_FOUND"
	CategoryTransient  Category = "TRANSIENT"
	CategoryOther      Category = "OTHER"
)

// throttleCodes are the API error codes AWS services use for rate limiting.
// The retryer treats these, plus transient ones, as retryable.
var throttleCodes = map[string]bool{
	"Throttling":                        true,
	"ThrottlingException":               true,
	"RequestLimitExceeded":              true,
	"TooManyRequestsException":          true,
	"ProvisionedThroughputExceededException": true,
	"SlowDown":                          true,
}

var authCodes = map[string]bool{
	"UnrecognizedClientException": true,
	"InvalidClientTokenId":        true,
	"AuthFailure":                 true,
	"ExpiredToken":                true,
	"ExpiredTokenException":       true,
}

var permissionCodes = map[string]bool{
	"AccessDenied":           true,
	"AccessDeniedException":  true,
	"UnauthorizedOperation":  true,
}

var notFoundCodes = map[string]bool{
	"NoSuchBucket":                true,
	"NoSuchEntity":                true,
	"ResourceNotFoundException":   true,
	"InvalidInstanceID.NotFound":  true,
	"InvalidVolume.NotFound":      true,
	"InvalidGroup.NotFound":       true,
	"ServerSideEncryptionConfigurationNotFoundError": true,
}

var transientCodes = map[string]bool{
	"RequestTimeout":         true,
	"RequestTimeoutException": true,
	"ServiceUnavailable":     true,
	"InternalError":          true,
	"InternalFailure":        true,
}

// Categorize classifies err using the smithy-go APIError code when the SDK
// call failed with a structured API error. Errors that are not an
// smithy.APIError (context cancellation, network dial failures, etc.) are
// classified OTHER.
func Categorize(err error) Category {
	if err == nil {
		return CategoryOther
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return CategoryOther
	}

	code := apiErr.ErrorCode()
	switch {
	case authCodes[code]:
		return CategoryAuth
	case permissionCodes[code]:
		return CategoryPermission
	case throttleCodes[code]:
		return CategoryThrottled
	case notFoundCodes[code]:
		return CategoryNotFound
	case transientCodes[code]:
		return CategoryTransient
	default:
		return CategoryOther
	}
}

// Retryable reports whether a call that failed with err should be retried
// by the custom Retryer: only THROTTLED and TRANSIENT are worth another
// attempt, AUTH/PERMISSION/NOT_FOUND never change on retry.
func Retryable(err error) bool {
	switch Categorize(err) {
	case CategoryThrottled, CategoryTransient:
		return true
	default:
		return false
	}
}
