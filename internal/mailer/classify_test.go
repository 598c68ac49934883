package mailer

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Classification
	}{
		{"nil", nil, ClassOther},
		{"rate limit lowercase", errors.New("provider rate limit reached"), ClassRateLimited},
		{"too many requests", errors.New("429 Too Many Requests"), ClassRateLimited},
		{"mixed case", errors.New("Rate Limit exceeded"), ClassRateLimited},
		{"other provider error", errors.New("mailbox unavailable"), ClassOther},
		{"timeout", errors.New("i/o timeout"), ClassOther},
	}

	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestPriorityHeader(t *testing.T) {
	if got := priorityHeader("urgent"); got != "1" {
		t.Errorf("urgent: got %q", got)
	}
	if got := priorityHeader("high"); got != "2" {
		t.Errorf("high: got %q", got)
	}
	if got := priorityHeader("normal"); got != "" {
		t.Errorf("normal: got %q", got)
	}
}
