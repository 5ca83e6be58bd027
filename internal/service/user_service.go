package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, registerDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credentialDTO *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, profileDTO *dto.ProfileUpdateDTO) error
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

// Register 注册新用户并绑定默认角色
func (s *userServiceImpl) Register(ctx context.Context, registerDTO *dto.RegisterDTO) error {
	hashed, err := security.HashPassword(registerDTO.Password)
	if err != nil {
		log.ErrorContext(ctx, "hash password error", "err", err)
		return UnExpectedError
	}

	role, err := s.userRepo.GetRoleByName(ctx, consts.RoleUser)
	if err != nil {
		return UnExpectedError
	}
	if role == nil {
		log.ErrorContext(ctx, "default role missing", "role", consts.RoleUser)
		return UnExpectedError
	}

	user := &model.User{
		Email:    registerDTO.Email,
		Name:     registerDTO.Name,
		Password: &hashed,
	}
	if registerDTO.Avatar != nil {
		user.Avatar = *registerDTO.Avatar
	}
	user.Bio = registerDTO.Bio

	roles := []*model.UserRole{{RoleID: role.ID}}
	if err = s.userRepo.CreateUser(ctx, user, &roles); err != nil {
		if isDuplicateError(err) {
			return ErrUserExist
		}
		log.ErrorContext(ctx, "create user error", "err", err)
		return UnExpectedError
	}
	return nil
}

// Login 校验凭据并签发 JWT
func (s *userServiceImpl) Login(ctx context.Context, credentialDTO *dto.CredentialDTO) (*dto.TokenDTO, error) {
	if credentialDTO.Email == "" || credentialDTO.Password == "" {
		return nil, ErrMissingLoginCredentials
	}

	user, err := s.userRepo.GetUserByEmail(ctx, credentialDTO.Email)
	if err != nil {
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Password == nil || security.CheckPasswordHash(credentialDTO.Password, *user.Password) != nil {
		return nil, ErrPasswordIncorrect
	}

	roleNames := make([]string, 0, len(user.UserRoles))
	for _, ur := range user.UserRoles {
		roleNames = append(roleNames, ur.Role.Name)
	}

	token, err := security.GenerateToken(user.ID, user.Email, user.Name, user.Avatar, roleNames)
	if err != nil {
		log.ErrorContext(ctx, "generate token error", "err", err)
		return nil, UnExpectedError
	}

	return &dto.TokenDTO{Token: token}, nil
}

// Logout 将当前 Token 签名写入黑名单，到期自动失效
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}

	key := consts.TokenBlacklistKey + signature
	if err = redis.SetWithExpiration(ctx, key, "1", security.JWTExpirationTime); err != nil {
		log.ErrorContext(ctx, "blacklist token error", "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	userDTO := &dto.UserDTO{}
	if err = copier.Copy(userDTO, user); err != nil {
		return nil, UnExpectedError
	}
	userDTO.UserID = &user.ID

	roleNames := make([]string, 0, len(user.UserRoles))
	for _, ur := range user.UserRoles {
		roleNames = append(roleNames, ur.Role.Name)
	}
	userDTO.Roles = roleNames

	return userDTO, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uint64, profileDTO *dto.ProfileUpdateDTO) error {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return UnExpectedError
	}
	if user == nil {
		return ErrUserNotFound
	}

	update := &model.User{ID: userID, UpdatedAt: time.Now()}
	if profileDTO.Name != nil {
		update.Name = *profileDTO.Name
	}
	if profileDTO.Avatar != nil {
		update.Avatar = *profileDTO.Avatar
	}
	if profileDTO.Bio != nil {
		update.Bio = profileDTO.Bio
	}

	if err = s.userRepo.UpdateUser(ctx, update); err != nil {
		log.ErrorContext(ctx, "update profile error", "user_id", userID, "err", err)
		return UnExpectedError
	}
	return nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
