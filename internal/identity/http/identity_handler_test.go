package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tehnczon/projectecho/internal/errors"
	"github.com/tehnczon/projectecho/internal/identity/domain"
	"github.com/tehnczon/projectecho/internal/identity/http/dto"
)

type MockIdentityUseCase struct {
	mock.Mock
}

func (m *MockIdentityUseCase) Submit(ctx context.Context, phoneNumber string) (*domain.EncryptedIdentity, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EncryptedIdentity), args.Error(1)
}

func (m *MockIdentityUseCase) FindByPhone(ctx context.Context, phoneNumber string) ([]*domain.EncryptedIdentity, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EncryptedIdentity), args.Error(1)
}

func (m *MockIdentityUseCase) Reveal(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func setupTestHandler(t *testing.T) (*IdentityHandler, *MockIdentityUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := new(MockIdentityUseCase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewIdentityHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestIdentityHandler_SubmitHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		ciphertext := []byte("opaque-ciphertext")
		token := strings.Repeat("ab", 32)

		mockUseCase.On("Submit", mock.Anything, "+639171234567").
			Return(&domain.EncryptedIdentity{
				ID:         uuid.Must(uuid.NewV7()),
				Ciphertext: ciphertext,
				BlindIndex: token,
				KeyID:      "v1",
			}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/identities",
			dto.SubmitIdentityRequest{PhoneNumber: "+639171234567"})

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.SubmitIdentityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Equal(t, base64.StdEncoding.EncodeToString(ciphertext), response.Encrypted)
		assert.Equal(t, token, response.PhoneHmac)
	})

	t.Run("Error_MissingPhoneNumber", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Submit", mock.Anything, "").
			Return(nil, domain.ErrMissingPhoneNumber).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/identities", map[string]any{})

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing phone number"}`, w.Body.String())
	})

	t.Run("Error_EmptyBody", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Submit", mock.Anything, "").
			Return(nil, domain.ErrMissingPhoneNumber).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/identities", nil)

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing phone number"}`, w.Body.String())
	})

	t.Run("Error_EncryptionRejected", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Submit", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrEncryptionRejected).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/identities",
			dto.SubmitIdentityRequest{PhoneNumber: "+639171234567"})

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_KeyServiceUnavailable", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Submit", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrKeyServiceUnavailable).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/identities",
			dto.SubmitIdentityRequest{PhoneNumber: "+639171234567"})

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Error_KeyNotFoundIsOpaque", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Submit", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrKeyNotFound).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/identities",
			dto.SubmitIdentityRequest{PhoneNumber: "+639171234567"})

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "internal_error", response["error"])
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/identities", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("invalid json")))
		c.Request.ContentLength = int64(len("invalid json"))

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
