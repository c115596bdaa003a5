package usecase

import (
	"context"

	"github.com/jhoicas/certificate-portal/internal/application/dto"
	"github.com/jhoicas/certificate-portal/internal/domain/entity"
	"github.com/jhoicas/certificate-portal/internal/domain/repository"
)

// UserUseCase lecturas del perfil para el dashboard.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                  u.ID,
		FullName:            u.FullName,
		Email:               u.Email,
		Phone:               u.Phone,
		CertificateFilename: u.CertificateFilename,
		CreatedAt:           u.CreatedAt,
	}
}
