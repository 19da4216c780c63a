package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/data/repos"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/domain"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/requestdata"
)

// AuthService verifies editor tokens issued by the identity provider and
// resolves them into request data. Editor rows are provisioned on first
// sight so the audit columns always reference a real row.
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db      *gorm.DB
	log     *logger.Logger
	editors repos.EditorRepo
	secret  []byte
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, editors repos.EditorRepo, jwtSecret string) AuthService {
	return &authService{
		db:      db,
		log:     baseLog.With("service", "AuthService"),
		editors: editors,
		secret:  []byte(jwtSecret),
	}
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return ctx, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return ctx, fmt.Errorf("token missing subject")
	}
	editorID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("token subject is not an editor id")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["nombre"].(string)

	if err := s.ensureEditor(ctx, editorID, email, name); err != nil {
		return ctx, err
	}

	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		EditorID:    editorID,
		EditorEmail: email,
	}), nil
}

func (s *authService) ensureEditor(ctx context.Context, id uuid.UUID, email, name string) error {
	existing, err := s.editors.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	if email == "" {
		email = fmt.Sprintf("%s@desconocido.local", id)
	}
	_, err = s.editors.Create(ctx, nil, []*domain.Editor{{ID: id, Email: email, Name: name}})
	return err
}
