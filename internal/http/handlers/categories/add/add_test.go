package add

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/magazine-admin/internal/categories"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Add(ctx context.Context, name string) ([]string, error) {
	args := m.Called(ctx, name)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func TestAddHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное добавление",
			body: `{"name":"Gaming"}`,
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "Gaming").Return([]string{"Arts", "Gaming"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"success":true,"message":"Category added successfully","data":["Arts","Gaming"]}`,
		},
		{
			name:           "нет имени",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Category name is required"}`,
		},
		{
			name:           "битый JSON",
			body:           `{"name":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Category name is required"}`,
		},
		{
			name:           "пустое имя",
			body:           `{"name":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Category name is required"}`,
		},
		{
			name: "имя из пробелов",
			body: `{"name":"   "}`,
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "   ").Return(nil, categories.ErrEmptyName)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Category name cannot be empty"}`,
		},
		{
			name: "дубликат",
			body: `{"name":"Arts"}`,
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "Arts").Return(nil, categories.ErrExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Category already exists"}`,
		},
		{
			name: "ошибка хранилища",
			body: `{"name":"Gaming"}`,
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "Gaming").Return(nil, errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
