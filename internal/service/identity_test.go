package service

import (
	"errors"
	"regexp"
	"testing"

	"clickmee/internal/domain"
	"clickmee/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func storedUser() *domain.User {
	return &domain.User{
		ID:       "u-1",
		Email:    "jane@example.com",
		Username: "User_1234",
		FullName: "Jane Doe",
		Score:    41,
	}
}

func TestProfileService_Get_ReconcilesPlaceholderName(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	service := NewProfileService(mockRepo, testutil.NewTestLogger())

	mockRepo.On("GetByID", "u-1").Return(storedUser(), nil)
	mockRepo.On("UpdateIdentity", "u-1", "Jane Doe", "").Return(nil)

	user, err := service.Get("u-1")

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.Username)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Get_ConflictRetriesWithSuffix(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	service := NewProfileService(mockRepo, testutil.NewTestLogger())

	suffixed := regexp.MustCompile(`^Jane Doe_\d{4}$`)

	mockRepo.On("GetByID", "u-1").Return(storedUser(), nil)
	mockRepo.On("UpdateIdentity", "u-1", "Jane Doe", "").Return(domain.ErrUsernameTaken).Once()
	mockRepo.On("UpdateIdentity", "u-1", mock.MatchedBy(func(name string) bool {
		return suffixed.MatchString(name)
	}), "").Return(nil).Once()

	user, err := service.Get("u-1")

	assert.NoError(t, err)
	assert.Regexp(t, suffixed, user.Username)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Get_SecondConflictKeepsStoredName(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	service := NewProfileService(mockRepo, testutil.NewTestLogger())

	mockRepo.On("GetByID", "u-1").Return(storedUser(), nil)
	mockRepo.On("UpdateIdentity", "u-1", mock.Anything, "").Return(domain.ErrUsernameTaken).Twice()

	user, err := service.Get("u-1")

	assert.NoError(t, err)
	assert.Equal(t, "User_1234", user.Username)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Get_SkipsReconciliation(t *testing.T) {
	tests := []struct {
		name string
		user *domain.User
	}{
		{
			name: "username already real",
			user: &domain.User{ID: "u-1", Username: "Jane Doe", FullName: "Jane Doe"},
		},
		{
			name: "no richer identity available",
			user: &domain.User{ID: "u-1", Username: "User_1234", FullName: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			service := NewProfileService(mockRepo, testutil.NewTestLogger())

			mockRepo.On("GetByID", "u-1").Return(tt.user, nil)

			user, err := service.Get("u-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.user.Username, user.Username)
			mockRepo.AssertNotCalled(t, "UpdateIdentity", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestProfileService_Get_UpdateFailureIsNonFatal(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	service := NewProfileService(mockRepo, testutil.NewTestLogger())

	mockRepo.On("GetByID", "u-1").Return(storedUser(), nil)
	mockRepo.On("UpdateIdentity", "u-1", "Jane Doe", "").Return(errors.New("connection refused")).Once()

	user, err := service.Get("u-1")

	assert.NoError(t, err)
	assert.Equal(t, "User_1234", user.Username)
	mockRepo.AssertExpectations(t)
}
