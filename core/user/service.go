package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
)

var (
	// errors
	ErrNotFound             = errors.New("user not found")
	ErrUsernameExists       = errors.New("a user with this username already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

type (
	Repository interface {
		CreateUser(user User) (User, error)
		GetUserByID(id string) (User, error)
		GetUserByUsernameOrEmail(username string) (User, error)
		SetLastLogin(id string, at time.Time) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	if _, err := svc.repo.GetUserByUsernameOrEmail(nu.Username); err == nil {
		return User{}, core.NewValidationError(ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	} else if err != ErrNotFound {
		return User{}, err
	}

	usr := User{
		ID:        uuid.New().String(),
		Name:      nu.Name,
		Username:  nu.Username,
		Email:     nu.Email,
		SchoolID:  nu.SchoolID,
		IsActive:  true,
		Roles:     nu.Roles,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, pkgerrors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(usr)
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

// Authenticate checks the credentials of an active user.
// A non-empty schoolID must be the user's school.
func (svc *Service) Authenticate(creds Credentials) (User, error) {
	usr, err := svc.repo.GetUserByUsernameOrEmail(core.CleanString(creds.Username, true /* lower */))
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrAuthenticationFailed
		}
		return User{}, err
	}
	if !usr.IsActive || usr.CheckPassword(creds.Password) != nil {
		return User{}, ErrAuthenticationFailed
	}
	if schoolID := core.CleanString(creds.SchoolID); schoolID != "" && schoolID != usr.SchoolID {
		return User{}, ErrAuthenticationFailed
	}

	now := time.Now().UTC()
	if err = svc.repo.SetLastLogin(usr.ID, now); err != nil {
		return User{}, pkgerrors.Wrap(err, "recording login")
	}
	usr.LastLogin = now
	return usr, nil
}
