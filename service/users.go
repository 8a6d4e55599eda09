package service

import (
	"context"
	"strings"

	"burger-house-api/models"

	"github.com/juju/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Users returns every user in creation order
func (s *Service) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// UsersByRole filters users by role
func (s *Service) UsersByRole(role models.UserRole) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func (s *Service) UserByID(id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.userIndex(id)
	if i < 0 {
		return models.User{}, errors.NotFoundf("user %d", id)
	}
	return s.users[i], nil
}

// CreateUser adds a staff, admin or customer account. Customer accounts
// normally come from RegisterCustomer so they get a profile too.
func (s *Service) CreateUser(ctx context.Context, username, password string, role models.UserRole) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.insertUser(username, password, role)
	if err != nil {
		return models.User{}, err
	}
	if err := s.save(ctx); err != nil {
		return models.User{}, err
	}
	s.log.Info("user created", zap.Int("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// insertUser validates and appends a user without saving
func (s *Service) insertUser(username, password string, role models.UserRole) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, errors.NotValidf("empty username")
	}
	if password == "" {
		return models.User{}, errors.NotValidf("empty password")
	}
	if !role.Valid() {
		return models.User{}, errors.NotValidf("role %q", role)
	}
	if s.usernameTaken(username) {
		return models.User{}, errors.AlreadyExistsf("username %q", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.User{}, errors.Annotate(err, "hashing password")
	}

	user := models.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now(),
	}
	s.nextUserID++
	s.users = append(s.users, user)
	return user, nil
}

// UpdateUserRole changes a user's role. The last admin cannot be demoted.
func (s *Service) UpdateUserRole(ctx context.Context, id int, role models.UserRole) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !role.Valid() {
		return models.User{}, errors.NotValidf("role %q", role)
	}
	i := s.userIndex(id)
	if i < 0 {
		return models.User{}, errors.NotFoundf("user %d", id)
	}
	if s.users[i].Role == models.RoleAdmin && role != models.RoleAdmin && s.adminCount() == 1 {
		return models.User{}, errors.Forbiddenf("demoting the last admin")
	}

	s.users[i].Role = role
	if err := s.save(ctx); err != nil {
		return models.User{}, err
	}
	s.log.Info("user role changed", zap.Int("user_id", id), zap.String("role", string(role)))
	return s.users[i], nil
}

// DeleteUser removes a non-admin user together with its customer profile
func (s *Service) DeleteUser(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndex(id)
	if i < 0 {
		return errors.NotFoundf("user %d", id)
	}
	if s.users[i].Role == models.RoleAdmin {
		return errors.Forbiddenf("deleting admin user %d", id)
	}

	s.users = append(s.users[:i], s.users[i+1:]...)
	kept := s.customers[:0]
	for _, c := range s.customers {
		if c.UserID != id {
			kept = append(kept, c)
		}
	}
	s.customers = kept

	if err := s.save(ctx); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.Int("user_id", id))
	return nil
}

// ChangePassword replaces a user's password after checking the current one
func (s *Service) ChangePassword(ctx context.Context, id int, current, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndex(id)
	if i < 0 {
		return errors.NotFoundf("user %d", id)
	}
	if bcrypt.CompareHashAndPassword([]byte(s.users[i].PasswordHash), []byte(current)) != nil {
		return errors.Forbiddenf("current password mismatch")
	}
	if next == "" {
		return errors.NotValidf("empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return errors.Annotate(err, "hashing password")
	}
	s.users[i].PasswordHash = string(hash)
	return s.save(ctx)
}

// FindUserByCredentials matches the trimmed username exactly and checks the
// password against its hash. Any mismatch is reported as not found.
func (s *Service) FindUserByCredentials(username, password string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	username = strings.TrimSpace(username)
	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil {
			return u, nil
		}
		break
	}
	return models.User{}, errors.NotFoundf("user with these credentials")
}

func (s *Service) userIndex(id int) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// usernameTaken ignores case, since till lookups match usernames that way
func (s *Service) usernameTaken(username string) bool {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

func (s *Service) adminCount() int {
	n := 0
	for _, u := range s.users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n
}
