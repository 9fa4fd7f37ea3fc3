package main

import "github.com/oetutor/tutorhub/core/tutoring"

// addUser creates an account without signing it in.
func (cli *commandLine) addUser(name, email, pwd, role string) error {
	usr, err := cli.svc.CreateUser(tutoring.NewUser{
		Name:     name,
		Email:    email,
		Password: pwd,
		Role:     role,
	})
	if err != nil {
		return err
	}
	logger.Printf("created %s %q (%s)\n", usr.Role, usr.Name, usr.ID)
	return nil
}
