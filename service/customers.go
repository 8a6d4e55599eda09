package service

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"burger-house-api/models"

	"github.com/juju/errors"
	"go.uber.org/zap"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
)

// RegisterInput is everything needed to sign up a customer
type RegisterInput struct {
	Username   string `json:"username" validate:"required,max=64"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name" validate:"required"`
	Surname1   string `json:"surname1"`
	Surname2   string `json:"surname2"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// ProfileUpdate replaces the editable fields of a customer profile
type ProfileUpdate struct {
	Name       string `json:"name" validate:"required"`
	Surname1   string `json:"surname1"`
	Surname2   string `json:"surname2"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
}

func (s *Service) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Customer(nil), s.customers...)
}

func (s *Service) CustomerByID(id int) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.customerIndex(id)
	if i < 0 {
		return models.Customer{}, errors.NotFoundf("customer %d", id)
	}
	return s.customers[i], nil
}

// FindCustomerByUserID returns the profile backing a customer account
func (s *Service) FindCustomerByUserID(userID int) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.UserID == userID {
			return c, nil
		}
	}
	return models.Customer{}, errors.NotFoundf("customer for user %d", userID)
}

// FindCustomerByCode resolves what staff type at the till. The token is
// matched case-insensitively against, in order, the account username, the
// numeric customer id and the unique code.
func (s *Service) FindCustomerByCode(token string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.lookupCustomer(token)
	if !ok {
		return models.Customer{}, errors.NotFoundf("customer %q", token)
	}
	return c, nil
}

func (s *Service) lookupCustomer(token string) (models.Customer, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Customer{}, false
	}

	for _, u := range s.users {
		if strings.EqualFold(u.Username, token) {
			for _, c := range s.customers {
				if c.UserID == u.ID {
					return c, true
				}
			}
		}
	}
	if id, err := strconv.Atoi(token); err == nil {
		if i := s.customerIndex(id); i >= 0 {
			return s.customers[i], true
		}
	}
	for _, c := range s.customers {
		if strings.EqualFold(c.UniqueCode, token) {
			return c, true
		}
	}
	return models.Customer{}, false
}

// RegisterCustomer creates a customer account and its profile together.
// On any failure neither is kept.
func (s *Service) RegisterCustomer(ctx context.Context, in RegisterInput) (models.User, models.Customer, error) {
	if err := s.validate.Struct(in); err != nil {
		return models.User{}, models.Customer{}, errors.NotValidf("registration: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	usersBefore, customersBefore := len(s.users), len(s.customers)
	user, err := s.insertUser(in.Username, in.Password, models.RoleCustomer)
	if err != nil {
		return models.User{}, models.Customer{}, err
	}
	customer := s.insertCustomer(user.ID, ProfileUpdate{
		Name:       in.Name,
		Surname1:   in.Surname1,
		Surname2:   in.Surname2,
		NationalID: in.NationalID,
		Phone:      in.Phone,
		Email:      in.Email,
	}, 0)

	if err := s.save(ctx); err != nil {
		s.users, s.customers = s.users[:usersBefore], s.customers[:customersBefore]
		return models.User{}, models.Customer{}, err
	}
	s.log.Info("customer registered",
		zap.Int("user_id", user.ID),
		zap.Int("customer_id", customer.ID),
		zap.String("code", customer.UniqueCode))
	return user, customer, nil
}

func (s *Service) insertCustomer(userID int, p ProfileUpdate, points int) models.Customer {
	customer := models.Customer{
		ID:               s.nextCustomerID,
		UserID:           userID,
		Name:             p.Name,
		Surname1:         p.Surname1,
		Surname2:         p.Surname2,
		NationalID:       p.NationalID,
		Phone:            p.Phone,
		Email:            p.Email,
		LoyaltyPoints:    points,
		RegistrationDate: s.now(),
		UniqueCode:       s.generateUniqueCode(),
	}
	s.nextCustomerID++
	s.customers = append(s.customers, customer)
	return customer
}

// UpdateCustomer replaces the profile fields. Points and code are untouched.
func (s *Service) UpdateCustomer(ctx context.Context, id int, p ProfileUpdate) (models.Customer, error) {
	if err := s.validate.Struct(p); err != nil {
		return models.Customer{}, errors.NotValidf("profile: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.customerIndex(id)
	if i < 0 {
		return models.Customer{}, errors.NotFoundf("customer %d", id)
	}
	c := &s.customers[i]
	c.Name = p.Name
	c.Surname1 = p.Surname1
	c.Surname2 = p.Surname2
	c.NationalID = p.NationalID
	c.Phone = p.Phone
	c.Email = p.Email

	if err := s.save(ctx); err != nil {
		return models.Customer{}, err
	}
	return *c, nil
}

// AddPoints credits loyalty points to a customer
func (s *Service) AddPoints(ctx context.Context, id, points int) (models.Customer, error) {
	if points <= 0 {
		return models.Customer{}, errors.NotValidf("points %d", points)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.customerIndex(id)
	if i < 0 {
		return models.Customer{}, errors.NotFoundf("customer %d", id)
	}
	if s.customers[i].LoyaltyPoints > math.MaxInt-points {
		return models.Customer{}, errors.NotValidf("points %d on a balance of %d", points, s.customers[i].LoyaltyPoints)
	}
	s.customers[i].LoyaltyPoints += points
	if err := s.save(ctx); err != nil {
		return models.Customer{}, err
	}
	return s.customers[i], nil
}

// RedeemPoints spends loyalty points. The balance never goes negative.
func (s *Service) RedeemPoints(ctx context.Context, id, points int) (models.Customer, error) {
	if points <= 0 {
		return models.Customer{}, errors.NotValidf("points %d", points)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.customerIndex(id)
	if i < 0 {
		return models.Customer{}, errors.NotFoundf("customer %d", id)
	}
	if s.customers[i].LoyaltyPoints < points {
		return models.Customer{}, fmt.Errorf("%w: has %d, wants %d",
			ErrInsufficientPoints, s.customers[i].LoyaltyPoints, points)
	}
	s.customers[i].LoyaltyPoints -= points
	if err := s.save(ctx); err != nil {
		return models.Customer{}, err
	}
	s.log.Info("points redeemed", zap.Int("customer_id", id), zap.Int("points", points))
	return s.customers[i], nil
}

// GenerateUniqueCode returns a fresh code not held by any customer
func (s *Service) GenerateUniqueCode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generateUniqueCode()
}

func (s *Service) generateUniqueCode() string {
	for {
		code := s.newCode()
		if !s.codeTaken(code) {
			return code
		}
	}
}

func (s *Service) codeTaken(code string) bool {
	for _, c := range s.customers {
		if strings.EqualFold(c.UniqueCode, code) {
			return true
		}
	}
	return false
}

func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}

func (s *Service) customerIndex(id int) int {
	for i, c := range s.customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}
