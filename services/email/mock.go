package emailsvc

import (
	"sync"

	"github.com/oetutor/tutorhub/core"
)

// MockService records messages synchronously so tests can assert on them.
type MockService struct {
	mu   sync.Mutex
	Sent []core.EmailMessage
}

var _ core.EmailService = (*MockService)(nil)

func NewMockService() *MockService { return &MockService{} }

func (svc *MockService) SendMessages(messages ...*core.EmailMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	for _, msg := range messages {
		if msg.HasRecipients() && msg.HasContent() {
			svc.Sent = append(svc.Sent, *msg)
		}
	}
}

// SentTo returns the messages addressed to the given email.
func (svc *MockService) SentTo(email string) []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	var out []core.EmailMessage
	for _, msg := range svc.Sent {
		for _, to := range msg.To {
			if to.Address == email {
				out = append(out, msg)
				break
			}
		}
	}
	return out
}
