package testutil

import (
	"testing"
	"time"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
	"github.com/trezcool/masomo-dashboard/core/event"
	"github.com/trezcool/masomo-dashboard/core/user"
)

// SchoolID is the school the test fixtures are seeded for.
const SchoolID = "sch-test"

// Config returns a TEST configuration that does not read the environment.
func Config() *core.Config {
	return &core.Config{
		Env:       "TEST",
		Build:     "test",
		AppName:   "Masomo",
		TestMode:  true,
		SecretKey: "test-secret",
		WeekStart: time.Sunday,
		Server: core.ServerConfig{
			Address:                   ":0",
			ShutdownTimeout:           time.Second,
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

// Token mints a token for a user of schoolID signed with conf's secret key.
func Token(t *testing.T, conf *core.Config, userID, username, schoolID string, roles ...string) string {
	claims := auth.NewClaims(conf.AppName, userID, username, schoolID, roles, conf.Server.JWTExpirationDelta)
	token, err := auth.GenerateToken(claims, []byte(conf.SecretKey))
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	return token
}

func CreateUser(t *testing.T, repo user.Repository, id, uname, pwd, schoolID string, roles []string, isActive bool) user.User {
	usr := user.User{
		ID:        id,
		Name:      uname,
		Username:  uname,
		SchoolID:  schoolID,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateEvent(t *testing.T, svc *event.Service, title, start, end string) event.Event {
	evt, err := svc.Create(event.NewEvent{Title: title, StartDate: start, EndDate: end, IsAllDay: true}, nil)
	if err != nil {
		t.Fatalf("CreateEvent() failed: %v", err)
	}
	return evt
}
