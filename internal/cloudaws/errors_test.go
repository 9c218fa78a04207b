package cloudaws

import (
	"errors"
	"testing"

	"github.com/aws/smithy-go"
)

type fakeAPIError struct {
	code string
}

func (e *fakeAPIError) Error() string        { return e.code }
func (e *fakeAPIError) ErrorCode() string    { return e.code }
func (e *fakeAPIError) ErrorMessage() string { return e.code }
func (e *fakeAPIError) ErrorFault() smithy.ErrorFault {
	return smithy.FaultUnknown
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryOther},
		{"plain error", errors.New("boom"), CategoryOther},
		{"throttling", &fakeAPIError{code: "ThrottlingException"}, CategoryThrottled},
		{"access denied", &fakeAPIError{code: "AccessDenied"}, CategoryPermission},
		{"expired token", &fakeAPIError{code: "ExpiredTokenException"}, CategoryAuth},
		{"not found", &fakeAPIError{code: "NoSuchBucket"}, CategoryNotFound},
		{"internal error", &fakeAPIError{code: "InternalError"}, CategoryTransient},
		{"unknown code", &fakeAPIError{code: "SomeWeirdCode"}, CategoryOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Categorize(tc.err); got != tc.want {
				t.Errorf("Categorize(%v) = %s; want %s", tc.err, got, tc.want)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(&fakeAPIError{code: "ThrottlingException"}) {
		t.Error("throttled errors should be retryable")
	}
	if Retryable(&fakeAPIError{code: "AccessDenied"}) {
		t.Error("permission errors should not be retryable")
	}
	if Retryable(nil) {
		t.Error("nil error should not be retryable")
	}
}
