package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"nexus/internal/domain"
	"nexus/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserSummary is the public directory view of a user.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserDetails is the admin view, including login metadata.
type UserDetails struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Role          string     `json:"role"`
	LastLoginIP   string     `json:"last_login_ip,omitempty"`
	DeviceDetails string     `json:"device_details,omitempty"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

func (s *UserService) Search(ctx context.Context, fragment string) ([]UserSummary, error) {
	users, err := s.userRepo.SearchByUsername(ctx, fragment)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u domain.User, _ int) UserSummary {
		return UserSummary{ID: u.ID, Username: u.Username}
	}), nil
}

// Contacts lists the distinct users the given user has exchanged
// messages with, in either direction.
func (s *UserService) Contacts(ctx context.Context, username string) ([]UserSummary, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	contacts, err := s.userRepo.Contacts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return lo.Map(contacts, func(u domain.User, _ int) UserSummary {
		return UserSummary{ID: u.ID, Username: u.Username}
	}), nil
}

func (s *UserService) List(ctx context.Context) ([]UserDetails, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u domain.User, _ int) UserDetails {
		return toUserDetails(u)
	}), nil
}

func (s *UserService) ByID(ctx context.Context, id int64) (*UserDetails, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	details := toUserDetails(*user)
	return &details, nil
}

func toUserDetails(u domain.User) UserDetails {
	return UserDetails{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		LastLoginIP:   u.LastLoginIP,
		DeviceDetails: u.DeviceDetails,
		LastLoginAt:   u.LastLoginAt,
	}
}
