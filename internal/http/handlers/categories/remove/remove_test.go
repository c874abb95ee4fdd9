package remove

import (
	"context"
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

func (m *MockService) Delete(ctx context.Context, name string) ([]string, error) {
	args := m.Called(ctx, name)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление",
			body: `{"categoryName":"Arts"}`,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "Arts").Return([]string{"Food"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Category deleted successfully","data":["Food"]}`,
		},
		{
			name:           "нет имени",
			body:           `{"name":"Arts"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Category name is required for deletion"}`,
		},
		{
			name:           "пустое имя",
			body:           `{"categoryName":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Category name is required for deletion"}`,
		},
		{
			name: "не найдена",
			body: `{"categoryName":"Nope"}`,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "Nope").Return(nil, categories.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"success":false,"message":"Category not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/categories", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
