package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/certificate-portal/internal/application/dto"
	"github.com/jhoicas/certificate-portal/internal/domain"
	"github.com/jhoicas/certificate-portal/internal/domain/entity"
	"github.com/jhoicas/certificate-portal/internal/domain/repository"
	"github.com/jhoicas/certificate-portal/pkg/jwt"
)

// Resultados reportados a Metrics.
const (
	ResultOK                 = "ok"
	ResultInvalid            = "invalid"
	ResultDuplicate          = "duplicate"
	ResultInvalidCredentials = "invalid_credentials"
	ResultError              = "error"
)

// SessionConfig configuración para la firma del token de sesión.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro (con certificado) y login.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	tx           TxRunner
	certificates CertificateIssuer
	hasher       PasswordHasher
	metrics      Metrics
	session      SessionConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	tx TxRunner,
	certificates CertificateIssuer,
	hasher PasswordHasher,
	metrics Metrics,
	session SessionConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		tx:           tx,
		certificates: certificates,
		hasher:       hasher,
		metrics:      metrics,
		session:      session,
	}
}

// RegisterUser crea el usuario, genera su certificado y registra el nombre del archivo,
// todo dentro de una transacción: el usuario solo queda persistido si el PDF se escribió.
//
// Retorna:
//   - domain.ErrInvalidInput        si falta algún campo o no cumple los límites.
//   - domain.ErrEmailAlreadyExists  si el email ya existe (pre-chequeo o constraint UNIQUE).
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (out *dto.UserResponse, err error) {
	defer func() { uc.metrics.RegistrationObserved(registrationResult(err)) }()

	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	// Optimización: el constraint UNIQUE es la fuente de verdad.
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	}
	err = uc.tx.RunInTx(ctx, func(users repository.UserRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		filename, err := uc.certificates.Issue(ctx, user)
		if err != nil {
			return fmt.Errorf("registro: generar certificado: %w", err)
		}
		if err := users.AttachCertificate(ctx, user.ID, filename); err != nil {
			// Se descarta antes del rollback: mientras la transacción siga abierta
			// ningún otro registro puede recibir este id.
			_ = uc.certificates.Discard(ctx, filename)
			return fmt.Errorf("registro: registrar certificado: %w", err)
		}
		user.CertificateFilename = filename
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password y genera el token de sesión.
// Email inexistente y password incorrecto devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (out *dto.LoginResponse, err error) {
	defer func() { uc.metrics.LoginObserved(loginResult(err)) }()

	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.session.Secret, user.ID, uc.session.Issuer, uc.session.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(uc.session.ExpMinutes) * time.Minute),
		User:      *toUserResponse(user),
	}, nil
}

// ParseSession valida el token de la cookie y devuelve el id del usuario.
func (uc *AuthUseCase) ParseSession(token string) (int64, error) {
	id, err := jwt.Parse(uc.session.Secret, uc.session.Issuer, token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return id, nil
}

func registrationResult(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrInvalidInput):
		return ResultInvalid
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return ResultDuplicate
	default:
		return ResultError
	}
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrInvalidInput):
		return ResultInvalid
	case errors.Is(err, domain.ErrUnauthorized):
		return ResultInvalidCredentials
	default:
		return ResultError
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                  u.ID,
		FullName:            u.FullName,
		Email:               u.Email,
		Phone:               u.Phone,
		CertificateFilename: u.CertificateFilename,
		CreatedAt:           u.CreatedAt,
	}
}
