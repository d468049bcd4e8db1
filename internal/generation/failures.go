package generation

import (
	"context"
	"errors"
	"fmt"

	"cardforge/internal/providers"
)

// Kind partitions pipeline failures into the categories callers act on.
// Configuration and quota failures are actionable by the user; the rest
// surface as generic processing errors.
type Kind string

const (
	KindConfiguration     Kind = "configuration"
	KindExtraction        Kind = "extraction"
	KindEmptyResponse     Kind = "empty_response"
	KindMalformedResponse Kind = "malformed_response"
	KindQuotaExceeded     Kind = "quota_exceeded"
	KindUpstream          Kind = "upstream"
	KindCancelled         Kind = "cancelled"
)

type Failure struct {
	Kind Kind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func NewFailure(kind Kind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

func Failf(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the failure kind carried by err, or KindUpstream when err is
// not a pipeline failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	return KindUpstream
}

// fromProviderError folds an upstream provider error into the pipeline
// taxonomy. Quota signatures become quota_exceeded so callers can tell the
// user to check billing rather than retry.
func fromProviderError(err error) *Failure {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewFailure(KindCancelled, err)
	}
	if providers.ClassifyError(err) == providers.ErrorQuota {
		return NewFailure(KindQuotaExceeded, err)
	}
	return NewFailure(KindUpstream, err)
}
