package providers

import "strings"

type ErrorType string

const (
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
)

// quotaSignatures are the known upstream error substrings that indicate
// exhausted quota or billing rather than a transient fault. Matching is
// best-effort: a novel upstream message falls through to ErrorPermanent.
var quotaSignatures = []string{
	"exceeded your current quota",
	"insufficient_quota",
	"billing hard limit",
}

func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	e := strings.ToLower(err.Error())
	for _, sig := range quotaSignatures {
		if strings.Contains(e, sig) {
			return ErrorQuota
		}
	}
	switch {
	case strings.Contains(e, "rate limit"), strings.Contains(e, "429"):
		return ErrorRate
	case strings.Contains(e, "timeout"), strings.Contains(e, "temporarily"), strings.Contains(e, "unavailable"):
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}
