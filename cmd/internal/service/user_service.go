package service

import (
	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/domain/policy"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"
	"aguagestor/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindAllActive() ([]*entity.User, error)
	FindByID(id int64) (*entity.User, error)
	FindActiveBySub(sub string) (*entity.User, error)
	ExistsActiveByEmail(email string) (bool, error)
	Save(user *entity.User) error
	SoftDelete(user *entity.User) error
}

type DefaultUserService struct {
	UserRepo UserRepository
	Policy   *policy.UserPolicy
	Validate *validator.Validate
}

func NewUserService(userRepo UserRepository, userPolicy *policy.UserPolicy, validate *validator.Validate) *DefaultUserService {
	return &DefaultUserService{
		UserRepo: userRepo,
		Policy:   userPolicy,
		Validate: validate,
	}
}

func (u *DefaultUserService) GetUsers(actor *entity.User) ([]*contract.UserResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageUsers) {
		return nil, apierror.UserMissingPermsError
	}

	users, err := u.UserRepo.FindAllActive()
	if err != nil {
		log.Errorf("failed to fetch users: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.UserResponse, len(users))
	for i, user := range users {
		resp[i] = toUserResponse(user, true)
	}
	return resp, nil
}

func (u *DefaultUserService) GetUserByID(actor *entity.User, id int64) (*contract.UserResponse, apierror.ErrorResponse) {
	manager := actor.Permissions.HasEffective(entity.PermissionManageUsers)
	if actor.ID != id && !manager {
		return nil, apierror.UserMissingPermsError
	}

	user, err := u.UserRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch user: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.NotFoundError
	}
	return toUserResponse(user, manager), nil
}

// CreateUser provisions the local profile for an identity-provider account.
// The subject UUID ties the profile to the token; permissions start at zero
// and must be granted explicitly afterwards.
func (u *DefaultUserService) CreateUser(actor *entity.User, req *contract.CreateUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageUsers) {
		return nil, apierror.UserMissingPermsError
	}

	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	existing, err := u.UserRepo.FindActiveBySub(req.Sub)
	if err != nil {
		log.Errorf("failed to fetch user: %v", err)
		return nil, apierror.InternalServerError
	}

	if existing != nil {
		return nil, apierror.NewSimple(409, "A user with this subject already exists")
	}

	taken, err := u.UserRepo.ExistsActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check email: %v", err)
		return nil, apierror.InternalServerError
	}

	if taken {
		return nil, apierror.NewSimple(409, "A user with this email already exists")
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:        uid.Generate(),
		SubUUID:   req.Sub,
		Username:  req.Username,
		Email:     req.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to save user: %v", err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(user, true), nil
}

func (u *DefaultUserService) UpdateUser(actor *entity.User, id int64, req *contract.UpdateUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	target, err := u.UserRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch user: %v", err)
		return nil, apierror.InternalServerError
	}

	if target == nil {
		return nil, apierror.NotFoundError
	}

	if req.Username != nil || req.Suspended != nil {
		if apierr := u.Policy.CanUpdateProfile(actor, target); apierr != nil {
			return nil, apierr
		}
	}

	if req.Perms != nil {
		newPerms := entity.Permission(*req.Perms)
		if apierr := u.Policy.CanUpdatePermissions(actor, target, newPerms); apierr != nil {
			return nil, apierr
		}
		target.Permissions = newPerms
	}

	if req.Username != nil {
		target.Username = *req.Username
	}
	if req.Suspended != nil {
		// Only managers reach this point, CanUpdateProfile already ran.
		target.Suspended = *req.Suspended
	}

	target.UpdatedAt = utils.NowUTC()
	if err := u.UserRepo.Save(target); err != nil {
		log.Errorf("failed to update user: %v", err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(target, actor.Permissions.HasEffective(entity.PermissionManageUsers)), nil
}

func (u *DefaultUserService) DeleteUser(actor *entity.User, id int64) apierror.ErrorResponse {
	target, err := u.UserRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch user: %v", err)
		return apierror.InternalServerError
	}

	if target == nil {
		return apierror.NotFoundError
	}

	if apierr := u.Policy.CanDelete(actor, target); apierr != nil {
		return apierr
	}

	if err := u.UserRepo.SoftDelete(target); err != nil {
		log.Errorf("failed to delete user %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func toUserResponse(user *entity.User, includeModeration bool) *contract.UserResponse {
	resp := &contract.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Perms:     int64(user.Permissions),
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
		UpdatedAt: utils.FormatEpoch(user.UpdatedAt),
	}

	if includeModeration {
		suspended := user.Suspended
		resp.Suspended = &suspended
	}
	return resp
}
