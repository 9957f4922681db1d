package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
)

// login signs in to the backend and prints the session token.
func (cli *commandLine) login(uname, pwd, schoolID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cli.conf.API.Timeout)
	defer cancel()

	sess, err := cli.api.Login(ctx, core.CleanString(uname, true /* lower */), pwd, core.CleanString(schoolID))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Signed in as %s (%s) for school %s\n", sess.Username, sess.Role, sess.SchoolID)
	fmt.Fprintln(cli.out, sess.Token)
	return nil
}

// mintToken prints a token signed with the configured secret key.
func (cli *commandLine) mintToken(uname, schoolID, role string, ttl time.Duration) error {
	valid := false
	for _, r := range auth.AllRoles {
		if r == role {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown role %q", role)
	}

	uname = core.CleanString(uname, true /* lower */)
	claims := auth.NewClaims(cli.conf.AppName, uname, uname, core.CleanString(schoolID), []string{role}, ttl)
	token, err := auth.GenerateToken(claims, []byte(cli.conf.SecretKey))
	if err != nil {
		return errors.Wrap(err, "minting token")
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
