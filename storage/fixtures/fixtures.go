// Package fixtures holds the development data of the mock API.
package fixtures

import (
	_ "embed"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/campus/core/auth"
	"github.com/trezcool/campus/storage/docdb"
)

//go:embed campus.yaml
var campusYAML []byte

// User is an account of the mock API.
type User struct {
	ID           string    `yaml:"_id"`
	Name         string    `yaml:"name"`
	Email        string    `yaml:"email"`
	Role         auth.Role `yaml:"role"`
	SchoolID     string    `yaml:"schoolId"`
	Password     string    `yaml:"password"`
	PasswordHash []byte    `yaml:"-"`
}

func (u User) AuthUser() auth.User {
	return auth.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, SchoolID: u.SchoolID}
}

// CheckPassword compares pwd with the password hash of the User.
func (u User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

type Set struct {
	Users       []User                 `yaml:"users"`
	Collections map[string][]docdb.Doc `yaml:"collections"`
}

// Load parses the embedded fixtures.
func Load() (*Set, error) {
	return Parse(campusYAML)
}

// Parse decodes fixtures and hashes the user passwords.
func Parse(data []byte) (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, errors.Wrap(err, "decoding fixtures")
	}

	for i := range set.Users {
		usr := &set.Users[i]
		if _, ok := auth.ParseRole(string(usr.Role)); !ok {
			return nil, errors.Errorf("fixture user %s: unknown role %q", usr.ID, usr.Role)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(usr.Password), bcrypt.MinCost)
		if err != nil {
			return nil, errors.Wrapf(err, "hashing the password of %s", usr.ID)
		}
		usr.PasswordHash = hash
		usr.Password = ""
	}
	return &set, nil
}

// Seed loads the collections of the set into db.
func (s *Set) Seed(db *docdb.DB) error {
	return db.Seed(s.Collections)
}

// FindUser returns the user with the given e-mail.
func (s *Set) FindUser(email string) (User, bool) {
	for _, usr := range s.Users {
		if usr.Email == email {
			return usr, true
		}
	}
	return User{}, false
}
