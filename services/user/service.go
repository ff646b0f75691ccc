package user

import (
	"fmt"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	userRepo "medibook/database/repository/user"
	"medibook/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages platform accounts.
type UserService interface {
	Register(req models.RegisterUserRequest) (*models.User, error)
	Authenticate(email, password string) (*models.User, string, error)
	GetByID(id string) (*models.User, error)
	RevokeToken(token string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	DoctorRepo doctorRepo.DoctorRepository
}

// Register creates the account and, for doctors, an empty professional
// profile the doctor fills in later.
func (s *DefaultUserService) Register(req models.RegisterUserRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	if req.Role == models.RoleDoctor {
		doctor := &models.Doctor{
			ID:        uuid.New().String(),
			UserID:    u.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.DoctorRepo.Create(doctor); err != nil {
			return nil, fmt.Errorf("account created but doctor profile failed: %w", err)
		}
	}
	return u, nil
}

func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}
