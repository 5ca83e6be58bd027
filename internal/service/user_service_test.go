package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo 内存版用户存储
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]*model.User
	roles  map[string]*model.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		nextID: 1,
		users:  make(map[uint64]*model.User),
		roles:  map[string]*model.Role{consts.RoleUser: {ID: 1, Name: consts.RoleUser}},
	}
}

func (f *fakeUserRepo) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[name]
	if !ok {
		return nil, nil
	}
	return role, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User, roles *[]*model.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	for _, role := range *roles {
		role.UserID = user.ID
		user.UserRoles = append(user.UserRoles, model.UserRole{
			UserID: user.ID,
			RoleID: role.RoleID,
			Role:   *f.roles[consts.RoleUser],
		})
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[user.ID]
	if !ok {
		return nil
	}
	if user.Name != "" {
		stored.Name = user.Name
	}
	if user.Avatar != "" {
		stored.Avatar = user.Avatar
	}
	if user.Bio != nil {
		stored.Bio = user.Bio
	}
	return nil
}

func (f *fakeUserRepo) GetRoleNames(ctx context.Context, userID uint64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	names := make([]string, 0, len(user.UserRoles))
	for _, ur := range user.UserRoles {
		names = append(names, ur.Role.Name)
	}
	return names, nil
}

func registerUser(t *testing.T, svc UserService, email, password string) {
	err := svc.Register(context.Background(), &dto.RegisterDTO{
		Name:     "Someone",
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	registerUser(t, svc, "someone@example.com", "s3cret-pass")

	token, err := svc.Login(ctx, &dto.CredentialDTO{Email: "someone@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	registerUser(t, svc, "someone@example.com", "s3cret-pass")

	_, err := svc.Login(ctx, &dto.CredentialDTO{Email: "someone@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.CredentialDTO{Email: "someone@example.com"})
	assert.ErrorIs(t, err, ErrMissingLoginCredentials)

	_, err = svc.Login(ctx, &dto.CredentialDTO{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
