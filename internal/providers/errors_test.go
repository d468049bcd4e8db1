package providers

import (
	"errors"
	"testing"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		msg  string
		want ErrorType
	}{
		{"insufficient_quota", ErrorQuota},
		{"You exceeded your current quota, check billing", ErrorQuota},
		{"429 rate", ErrorRate},
		{"rate limit reached", ErrorRate},
		{"timeout", ErrorTransient},
		{"service unavailable", ErrorTransient},
		{"bad request", ErrorPermanent},
		{"invalid model", ErrorPermanent},
	}
	for _, c := range cases {
		if got := ClassifyError(errors.New(c.msg)); got != c.want {
			t.Fatalf("classify %q: got %s want %s", c.msg, got, c.want)
		}
	}
	if got := ClassifyError(nil); got != "" {
		t.Fatalf("nil error should classify to empty, got %s", got)
	}
}
