package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/masomo-dashboard/apps/api/echo"
	"github.com/trezcool/masomo-dashboard/core/audit"
	"github.com/trezcool/masomo-dashboard/core/auth"
	"github.com/trezcool/masomo-dashboard/core/event"
	"github.com/trezcool/masomo-dashboard/core/user"
	apisvc "github.com/trezcool/masomo-dashboard/services/api"
	inmemdb "github.com/trezcool/masomo-dashboard/storage/database/inmem"
	testutil "github.com/trezcool/masomo-dashboard/tests"
)

// today is a Wednesday; March 2024 starts on a Friday.
var today = time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	conf := testutil.Config()
	conf.API.SchoolID = testutil.SchoolID
	conf.API.Timeout = time.Second

	db, err := inmemdb.Open()
	require.NoError(t, err)
	require.NoError(t, inmemdb.Seed(db, testutil.SchoolID, today))

	rec := audit.NewRecorder(inmemdb.NewAuditRepository(db))
	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:           conf,
		UserSvc:        user.NewService(inmemdb.NewUserRepository(db)),
		EventSvc:       event.NewService(inmemdb.NewEventRepository(db), rec, nil),
		SchoolRepo:     inmemdb.NewSchoolRepository(db),
		AnalyticsRepo:  inmemdb.NewAnalyticsRepository(db),
		Audit:          rec,
		DisableReqLogs: true,
	})
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)

	token := testutil.Token(t, conf, "usr-admin", inmemdb.FixtureAdminUsername, testutil.SchoolID, auth.RoleAdminPrincipal)
	sess, err := auth.SessionFromToken(token, conf.API.SchoolID)
	require.NoError(t, err)
	client, err := apisvc.NewClient(apisvc.Options{BaseURL: srv.URL, Timeout: conf.API.Timeout, Session: sess})
	require.NoError(t, err)

	out := new(bytes.Buffer)
	return &commandLine{
		conf: conf,
		api:  client,
		out:  out,
		now:  func() time.Time { return today },
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		if err != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
			t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
		}
	case err != nil:
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "unknown flag", args: []string{"token", "-lol"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			tt.check(t, cli.run(args))
			assert.NotEmpty(t, out.String())
		})
	}
}

func Test_commandLine_login(t *testing.T) {
	cli, out := setup(t)

	defer func(f func(int) ([]byte, error)) { readPasswordFunc = f }(readPasswordFunc)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"login"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"login", "-username", "admin"}, wantErr: errHelp},
		{name: "wrong password", args: []string{"login", "-username", "admin"}, extra: extra{pwd: "lol"}, wantErrStr: "authentication failed"},
		{name: "wrong school", args: []string{"login", "-username", "admin", "-school", "sch-other"}, extra: extra{pwd: inmemdb.FixturePassword}, wantErrStr: "authentication failed"},
		{name: "login", args: []string{"login", "-username", "ADMIN "}, extra: extra{pwd: inmemdb.FixturePassword}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			tt.check(t, err)
			if err != nil || tt.wantErr != nil || tt.wantErrStr != "" {
				return
			}

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.True(t, len(lines) >= 2, out.String())
			assert.Contains(t, lines[len(lines)-2], "Signed in as admin (admin:principal) for school sch-test")
			claims, err := auth.ParseToken(lines[len(lines)-1], []byte(cli.conf.SecretKey))
			require.NoError(t, err)
			assert.Equal(t, testutil.SchoolID, claims.SchoolID)
		})
	}
}

func Test_commandLine_token(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no args", args: []string{"token"}, wantErr: errHelp},
		{name: "unknown role", args: []string{"token", "-username", "bob", "-role", "janitor"}, wantErrStr: `unknown role "janitor"`},
		{name: "default role", args: []string{"token", "-username", "Bob"}, extra: auth.RoleAdmin},
		{name: "teacher", args: []string{"token", "-username", "bob", "-school", "sch-2", "-role", auth.RoleTeacher, "-ttl", "1m"}, extra: auth.RoleTeacher},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			tt.check(t, err)
			if err != nil {
				return
			}

			claims, err := auth.ParseToken(strings.TrimSpace(out.String()), []byte(cli.conf.SecretKey))
			require.NoError(t, err)
			assert.Equal(t, "bob", claims.Username)
			assert.Equal(t, []string{tt.extra.(string)}, claims.Roles)
			if tt.extra == auth.RoleTeacher {
				assert.Equal(t, "sch-2", claims.SchoolID)
				assert.InDelta(t, time.Now().Add(time.Minute).Unix(), claims.ExpiresAt, 5)
			} else {
				assert.Equal(t, testutil.SchoolID, claims.SchoolID)
			}
		})
	}
}

func Test_commandLine_calendar(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "bad month", args: []string{"calendar", "-month", "2024-13"}, wantErrStr: "2024-13"},
		{name: "current month", args: []string{"calendar"}},
		{name: "explicit month, monday", args: []string{"calendar", "-month", "2024-03", "-monday"}, extra: true},
		{name: "month without events", args: []string{"calendar", "-month", "2023-07"}, extra: false},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			tt.check(t, err)
			if err != nil {
				return
			}

			lines := strings.Split(out.String(), "\n")
			if tt.extra == false {
				assert.Equal(t, "July 2023", lines[0])
				assert.Contains(t, out.String(), "No events.")
				return
			}

			assert.Equal(t, "March 2024", lines[0])
			if tt.extra == true {
				assert.True(t, strings.HasPrefix(lines[1], " Mo  Tu"), lines[1])
				// Feb 26 .. Mar 3
				assert.Equal(t, "  .   .   .   .   1   2   3*", lines[2])
			} else {
				assert.True(t, strings.HasPrefix(lines[1], " Su  Mo"), lines[1])
				// Feb 25 .. Mar 2, then Mar 3 .. 9
				assert.Equal(t, "  .   .   .   .   .   1   2 ", lines[2])
				assert.Equal(t, "  3*  4   5   6<  7   8*  9 ", lines[3])
			}

			text := out.String()
			assert.Contains(t, text, "2024-03-08             Parents meeting [meeting]")
			assert.Contains(t, text, "2024-03-13..2024-03-17 Mid-term exams [exam]")
			assert.Contains(t, text, "2024-03-03             Sports day [sports]")
			assert.Contains(t, text, "2024-03-20..2024-03-24 Mid-term break [holiday]")
			assert.Less(t, strings.Index(text, "Sports day"), strings.Index(text, "Parents meeting"))
		})
	}
}
