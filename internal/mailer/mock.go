// internal/mailer/mock.go
package mailer

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// MockSender simulates a provider with a 90% success rate. Useful for local
// runs without SMTP credentials.
type MockSender struct{}

func (MockSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if rand.Float64() < 0.9 {
		return "mock-" + uuid.NewString(), nil
	}
	return "", fmt.Errorf("mock sending failed")
}
