// internal/mailer/classify.go
package mailer

import "strings"

// Classification of a failed send.
type Classification int

const (
	ClassOther Classification = iota
	ClassRateLimited
)

// RateLimitMessage is the normalized error stored on a delivery record when
// the provider reports a rate limit.
const RateLimitMessage = "Rate limit exceeded - please try again in a moment"

var rateLimitSignatures = []string{
	"rate limit",
	"too many requests",
}

// Classify inspects opaque provider error text and decides whether the
// failure was a provider rate limit.
func Classify(err error) Classification {
	if err == nil {
		return ClassOther
	}
	text := strings.ToLower(err.Error())
	for _, sig := range rateLimitSignatures {
		if strings.Contains(text, sig) {
			return ClassRateLimited
		}
	}
	return ClassOther
}
