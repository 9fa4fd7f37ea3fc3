package main

// resetPassword directly rehashes a user's password.
func (cli *commandLine) resetPassword(email, pwd string) error {
	return cli.svc.SetUserPassword(email, pwd)
}
