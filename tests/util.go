package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/oetutor/tutorhub/core"
	"github.com/oetutor/tutorhub/core/tutoring"
	emailsvc "github.com/oetutor/tutorhub/services/email"
	"github.com/oetutor/tutorhub/storage/kv/inmemkv"
)

// Clock is a controllable time source for tests.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

var _ core.Clock = (*Clock)(nil)

// ReferenceTime is an arbitrary fixed instant tests can agree on.
var ReferenceTime = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime
	}
	return &Clock{current: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward and returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}

// NewService builds a seeded Service on an in-memory store with a fixed
// clock and a synchronous mock mailer.
func NewService(t *testing.T) (*tutoring.Service, *Clock, *emailsvc.MockService) {
	t.Helper()
	clock := NewClock(time.Time{})
	mailer := emailsvc.NewMockService()
	store := tutoring.NewDocumentStore(inmemkv.Open())
	svc, err := tutoring.NewService(core.NewTestConfig(), store, clock, mailer, nil)
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	return svc, clock, mailer
}

// SignUpUser creates and signs in a fresh account.
func SignUpUser(t *testing.T, svc *tutoring.Service, name, email, pwd, role string) tutoring.User {
	t.Helper()
	usr, err := svc.SignUp(tutoring.NewUser{Name: name, Email: email, Password: pwd, Role: role})
	if err != nil {
		t.Fatalf("SignUpUser(%s) failed: %v", email, err)
	}
	return usr
}

// DemoUsers returns the seeded tutor and student.
func DemoUsers(t *testing.T, svc *tutoring.Service) (tutor, student tutoring.User) {
	t.Helper()
	for _, u := range append(svc.Tutors(), svc.Students()...) {
		switch u.Email {
		case tutoring.DemoTutorEmail:
			tutor = u
		case tutoring.DemoStudentEmail:
			student = u
		}
	}
	if tutor.ID == "" || student.ID == "" {
		t.Fatal("seed users not found")
	}
	return tutor, student
}
