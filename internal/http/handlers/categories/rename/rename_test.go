package rename

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

func (m *MockService) Rename(ctx context.Context, oldName, newName string) ([]string, error) {
	args := m.Called(ctx, oldName, newName)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

func TestRenameHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное переименование",
			body: `{"oldName":"Travel","newName":"Tourism"}`,
			setupMock: func(m *MockService) {
				m.On("Rename", mock.Anything, "Travel", "Tourism").Return([]string{"Tourism"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Category updated successfully","data":["Tourism"]}`,
		},
		{
			name:           "нет нового имени",
			body:           `{"oldName":"Travel"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Both old and new category names are required"}`,
		},
		{
			name:           "нет старого имени",
			body:           `{"newName":"Tourism"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Both old and new category names are required"}`,
		},
		{
			name:           "битый JSON",
			body:           `not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Both old and new category names are required"}`,
		},
		{
			name: "не найдена",
			body: `{"oldName":"Nope","newName":"X"}`,
			setupMock: func(m *MockService) {
				m.On("Rename", mock.Anything, "Nope", "X").Return(nil, categories.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"success":false,"message":"Category not found"}`,
		},
		{
			name: "имя занято",
			body: `{"oldName":"Travel","newName":"Food"}`,
			setupMock: func(m *MockService) {
				m.On("Rename", mock.Anything, "Travel", "Food").Return(nil, categories.ErrExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Category name already exists"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/categories", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
