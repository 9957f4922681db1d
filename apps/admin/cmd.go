package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
	apisvc "github.com/trezcool/masomo-dashboard/services/api"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
	api  *apisvc.Client
	out  io.Writer
	now  func() time.Time
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME|EMAIL [-school SCHOOL_ID] - sign in and print the token")
	fmt.Fprintln(cli.out, "  token -username USERNAME -school SCHOOL_ID [-role ROLE] [-ttl DURATION] - mint a dev token")
	fmt.Fprintln(cli.out, "  calendar [-month YYYY-MM] [-monday] - print the events calendar of a month")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginUname := loginCmd.String("username", "", "The user's username or email. The password will be prompted next.")
	loginSchool := loginCmd.String("school", cli.conf.API.SchoolID, "The school to sign in to.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenUname := tokenCmd.String("username", "", "The username carried by the token.")
	tokenSchool := tokenCmd.String("school", cli.conf.API.SchoolID, "The school carried by the token.")
	tokenRole := tokenCmd.String("role", auth.RoleAdmin, "The role carried by the token.")
	tokenTTL := tokenCmd.Duration("ttl", cli.conf.Server.JWTExpirationDelta, "How long the token is valid.")

	calendarCmd := flag.NewFlagSet("calendar", flag.ContinueOnError)
	calendarMonth := calendarCmd.String("month", "", "The month to print, as YYYY-MM. Defaults to the current month.")
	calendarMonday := calendarCmd.Bool("monday", cli.conf.WeekStart == time.Monday, "Start weeks on Monday.")

	for _, fs := range []*flag.FlagSet{loginCmd, tokenCmd, calendarCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *loginUname == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginUname, string(pwd), *loginSchool)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *tokenUname == "" || *tokenSchool == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.mintToken(*tokenUname, *tokenSchool, *tokenRole, *tokenTTL)
	case "calendar":
		if err := calendarCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.calendar(*calendarMonth, *calendarMonday)
	default:
		cli.printUsage()
		return errHelp
	}
}
