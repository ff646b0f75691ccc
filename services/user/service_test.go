package user

import (
	"fmt"
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	created   *models.User
	createErr error
}

func (r *stubUserRepo) Create(u *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = u
	return nil
}

func (r *stubUserRepo) GetByID(id string) (*models.User, error) {
	if r.created != nil && r.created.ID == id {
		return r.created, nil
	}
	return nil, fmt.Errorf("user with id %s not found", id)
}

func (r *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	if r.created != nil && r.created.Email == email {
		return r.created, nil
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

type stubDoctorRepo struct {
	created *models.Doctor
}

func (r *stubDoctorRepo) Create(d *models.Doctor) error {
	r.created = d
	return nil
}

func (r *stubDoctorRepo) GetByID(id string) (*models.Doctor, error) { return nil, nil }

func (r *stubDoctorRepo) GetByUserID(userID string) (*models.Doctor, error) { return nil, nil }

func (r *stubDoctorRepo) Update(d *models.Doctor) error { return nil }

func (r *stubDoctorRepo) SetRatingStats(doctorID string, average float64, total int) error {
	return nil
}

func registration(role string) models.RegisterUserRequest {
	return models.RegisterUserRequest{
		Email:     "alex@example.com",
		Password:  "hunter2hunter2",
		FirstName: "Alex",
		LastName:  "Kim",
		Role:      role,
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &stubUserRepo{}
	svc := &DefaultUserService{Repo: repo, DoctorRepo: &stubDoctorRepo{}}

	u, err := svc.Register(registration(models.RolePatient))
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2hunter2")))
}

func TestRegisterPatientCreatesNoDoctorProfile(t *testing.T) {
	doctors := &stubDoctorRepo{}
	svc := &DefaultUserService{Repo: &stubUserRepo{}, DoctorRepo: doctors}

	_, err := svc.Register(registration(models.RolePatient))
	require.NoError(t, err)
	assert.Nil(t, doctors.created)
}

func TestRegisterDoctorCreatesEmptyProfile(t *testing.T) {
	doctors := &stubDoctorRepo{}
	svc := &DefaultUserService{Repo: &stubUserRepo{}, DoctorRepo: doctors}

	u, err := svc.Register(registration(models.RoleDoctor))
	require.NoError(t, err)
	require.NotNil(t, doctors.created)
	assert.Equal(t, u.ID, doctors.created.UserID)
	assert.NotEmpty(t, doctors.created.ID)
}

func TestRegisterDuplicateEmailPassesThrough(t *testing.T) {
	repo := &stubUserRepo{createErr: fmt.Errorf("user with email alex@example.com already exists")}
	svc := &DefaultUserService{Repo: repo, DoctorRepo: &stubDoctorRepo{}}

	_, err := svc.Register(registration(models.RolePatient))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
