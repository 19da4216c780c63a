package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/apierr"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

func TestRegisterWithoutStorageBackend(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	svc := NewMediaService(log, nil, nil, nil)

	_, err = svc.Register(context.Background(), uuid.New(), "evidencia.mp3", "audio", strings.NewReader("datos"))
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusServiceUnavailable || ae.Code != "almacenamiento_no_disponible" {
		t.Fatalf("Register = %v, want 503 almacenamiento_no_disponible", err)
	}
}
