package auth

import (
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderSchoolID      = "X-School-ID"
)

// Session carries who is calling and for which school (tenant).
// It is passed explicitly to every component that talks to the backend.
type Session struct {
	SchoolID string
	Token    string
	Role     string
	Username string
}

// SessionFromToken decodes the token claims without verifying the signature;
// verification is the backend's job. schoolID overrides the token's school when set.
func SessionFromToken(token, schoolID string) (Session, error) {
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return Session{}, errors.Wrap(ErrInvalidToken, err.Error())
	}
	sess := Session{
		SchoolID: claims.SchoolID,
		Token:    token,
		Role:     primaryRole(claims.Roles),
		Username: claims.Username,
	}
	if schoolID != "" {
		sess.SchoolID = schoolID
	}
	return sess, nil
}

// IsZero reports whether the session carries no credentials at all.
func (s Session) IsZero() bool {
	return s.Token == "" && s.SchoolID == ""
}

func (s Session) IsAdmin() bool {
	return strings.HasPrefix(s.Role, RoleAdmin)
}

// Apply sets the session headers on a header map.
func (s Session) Apply(headers map[string]string) {
	if s.Token != "" {
		headers[HeaderAuthorization] = "Bearer " + s.Token
	}
	if s.SchoolID != "" {
		headers[HeaderSchoolID] = s.SchoolID
	}
}

// ApplyRequest sets the session headers on an *http.Request.
func (s Session) ApplyRequest(r *http.Request) {
	headers := make(map[string]string, 2)
	s.Apply(headers)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
}

var rolePriorities = map[string]int{
	// Admins: 30 - 21
	RoleAdminOwner:     30,
	RoleAdminPrincipal: 29,
	RoleAdmin:          21,

	// Teachers: 20 - 11
	RoleTeacher: 11,

	// Students: 10 - 1
	RoleStudent: 1,
}

// primaryRole returns the role with the highest priority.
func primaryRole(roles []string) string {
	var (
		best string
		max  int
	)
	for _, role := range roles {
		if p := rolePriorities[role]; p > max {
			max = p
			best = role
		}
	}
	return best
}
