package userRepo

import "medibook/models"

// UserRepository is the data access surface for platform accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
