package main

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/oetutor/tutorhub/core"
	"github.com/oetutor/tutorhub/core/tutoring"
	testutil "github.com/oetutor/tutorhub/tests"
)

func setup(t *testing.T) (*commandLine, *tutoring.Service) {
	logger = log.New(io.Discard, "", 0)
	svc, _, _ := testutil.NewService(t)
	return &commandLine{svc: svc}, svc
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string   // prompted password, if any
	wantErr error
}

func Test_commandLine_addUser(t *testing.T) {
	cli, svc := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "name but no email", args: []string{"adduser", "-name", "Ana"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-name", "Ana", "-email", "ana@test.cd"}, wantErr: errHelp},
		{name: "default role", args: []string{"adduser", "-name", "Ana", "-email", "ana@test.cd"}, pwd: "secret1"},
		{name: "tutor role", args: []string{"adduser", "-name", "Bob", "-email", "bob@test.cd", "-role", tutoring.RoleTutor}, pwd: "secret1"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// created accounts can sign in, with the roles given
	usr, err := svc.SignIn(tutoring.Credentials{Email: "ana@test.cd", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	if !usr.IsStudent() {
		t.Errorf("role = %v, want %v", usr.Role, tutoring.RoleStudent)
	}
	if usr, err = svc.SignIn(tutoring.Credentials{Email: "bob@test.cd", Password: "secret1"}); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	if !usr.IsTutor() {
		t.Errorf("role = %v, want %v", usr.Role, tutoring.RoleTutor)
	}
}

func Test_commandLine_addUser_invalid(t *testing.T) {
	cli, _ := setup(t)

	tests := []cliTest{
		{name: "bad email", args: []string{"adduser", "-name", "Ana", "-email", "nope"}, pwd: "secret1"},
		{name: "bad role", args: []string{"adduser", "-name", "Ana", "-email", "ana@test.cd", "-role", "Admin"}, pwd: "secret1"},
		{name: "email taken", args: []string{"adduser", "-name", "Ana", "-email", tutoring.DemoStudentEmail}, pwd: "secret1"},
		{name: "short password", args: []string{"adduser", "-name", "Ana", "-email", "ana@test.cd"}, pwd: "pw"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			var vErr *core.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("cli.run() error = %v, want a validation error", err)
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, svc := setup(t)

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", tutoring.DemoStudentEmail}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, pwd: "newpass", wantErr: tutoring.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", tutoring.DemoStudentEmail}, pwd: "newpass"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := svc.SignIn(tutoring.Credentials{Email: tutoring.DemoStudentEmail, Password: "newpass"}); err != nil {
		t.Errorf("SignIn() with new password failed: %v", err)
	}
	if _, err := svc.SignIn(tutoring.Credentials{Email: tutoring.DemoStudentEmail, Password: tutoring.DemoPassword}); err != tutoring.ErrIncorrectPassword {
		t.Errorf("SignIn() with old password error = %v, want %v", err, tutoring.ErrIncorrectPassword)
	}
}

func Test_commandLine_stats(t *testing.T) {
	cli, _ := setup(t)

	if err := cli.run([]string{"admin", "stats"}); err != nil {
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}
