package commands

import (
	"context"

	"badminton-booking/internal/domain/account"
	"badminton-booking/internal/infra"
	"badminton-booking/internal/pkg/errs"
	"badminton-booking/internal/pkg/jwt"
	"badminton-booking/internal/pkg/password"
	"badminton-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken           = errs.New("email already registered")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type RegisterResult struct {
	UserID uuid.UUID
}

type LoginResult struct {
	UserID      uuid.UUID
	AccessToken string
}

type AccountCommands interface {
	Register(ctx context.Context, email, rawPassword, displayName string) (*RegisterResult, error)
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type accountCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
}

func NewAccountCommands(uow shared.UnitOfWork, jwtService *jwt.Service) AccountCommands {
	return &accountCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
	}
}

func (a *accountCommandsImpl) Register(ctx context.Context, email, rawPassword, displayName string) (*RegisterResult, error) {
	emailVO, err := account.NewEmail(email)
	if err != nil {
		return nil, err
	}
	passwordVO, err := account.NewPassword(rawPassword)
	if err != nil {
		return nil, err
	}

	hash, err := password.HashPassword(passwordVO.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	user := account.NewUser(emailVO, hash, displayName)

	var createdID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, cerr := tx.Users().Create(ctx, tx.DB(), user)
		if cerr != nil {
			if infra.IsKind(cerr, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return cerr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResult{UserID: createdID}, nil
}

func (a *accountCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	snap, err := a.uow.CommandReads().UserByEmail(ctx, email)
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		return nil, ErrInvalidCredentials
	}
	if !snap.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(snap.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(snap.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      snap.ID,
		AccessToken: token,
	}, nil
}
