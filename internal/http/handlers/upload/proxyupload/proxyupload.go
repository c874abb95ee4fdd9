// Package proxyupload реализует POST /api/upload: приём multipart-файла и
// загрузку его в объектное хранилище с ключами сервера.
package proxyupload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/magazine-admin/internal/events"
	"github.com/magabrotheeeer/magazine-admin/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-admin/internal/metrics"
	"github.com/magabrotheeeer/magazine-admin/internal/models"
	"github.com/magabrotheeeer/magazine-admin/internal/upload"
)

const (
	endpoint  = "upload"
	maxMemory = 32 << 20
	// multipart-обёртка поверх самого файла.
	formOverhead = 1 << 20
)

// Storage кладёт объект в хранилище и возвращает его публичный адрес.
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// Handler обработчик загрузки через прокси.
type Handler struct {
	log     *slog.Logger
	storage Storage
	pub     events.Publisher
	metrics *metrics.Metrics
	maxSize int64
}

// New создаёт Handler. maxSize ограничивает размер файла в байтах.
func New(log *slog.Logger, storage Storage, pub events.Publisher, m *metrics.Metrics, maxSize int64) *Handler {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Handler{log: log, storage: storage, pub: pub, metrics: m, maxSize: maxSize}
}

// FileUploaded событие успешной загрузки.
type FileUploaded struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// ServeHTTP godoc
// @Summary Загрузить файл через прокси
// @Description Принимает multipart (file, fileName, folder) и кладёт файл в хранилище. Возвращает публичный адрес.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл"
// @Param fileName formData string true "Ключ или имя объекта"
// @Param folder formData string false "Папка в бакете"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.UploadResponse "Нет файла, имени или недопустимый тип"
// @Failure 413 {object} models.UploadResponse "Файл больше допустимого"
// @Failure 500 {object} models.UploadResponse "Ошибка хранилища"
// @Router /api/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload.proxyupload"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+formOverhead)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("upload body too large", slog.Int64("limit", tooLarge.Limit))
			h.fail(w, r, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		log.Error("failed to parse multipart form", sl.Err(err))
		h.fail(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("no file in request", sl.Err(err))
		h.fail(w, r, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	fileName := strings.TrimSpace(r.FormValue("fileName"))
	if fileName == "" {
		h.fail(w, r, http.StatusBadRequest, "No file name provided")
		return
	}

	rawType := header.Header.Get("Content-Type")
	contentType, _, err := mime.ParseMediaType(rawType)
	if err != nil || !upload.TypeAllowed(contentType) {
		log.Warn("rejected file type", slog.String("content_type", rawType))
		h.fail(w, r, http.StatusBadRequest, "File type "+rawType+" is not allowed")
		return
	}
	if header.Size > h.maxSize {
		h.fail(w, r, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}
	if header.Size == 0 {
		h.fail(w, r, http.StatusBadRequest, "File is empty")
		return
	}

	key := Namespace(r.FormValue("folder"), fileName)
	url, err := h.storage.Put(r.Context(), key, file, header.Size, contentType)
	if err != nil {
		log.Error("failed to store object", slog.String("key", key), sl.Err(err))
		h.metrics.Upload(endpoint, metrics.ResultError)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, models.UploadResponse{Success: false, Error: "Upload failed"})
		return
	}

	if err := h.pub.Publish(r.Context(), events.FileUploaded, FileUploaded{
		Key: key, URL: url, Size: header.Size, ContentType: contentType,
	}); err != nil {
		log.Warn("failed to publish upload event", sl.Err(err))
	}

	h.metrics.Upload(endpoint, metrics.ResultOK)
	log.Info("file uploaded", slog.String("key", key), slog.Int64("size", header.Size))
	render.JSON(w, r, models.UploadResponse{Success: true, URL: url})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.metrics.Upload(endpoint, metrics.ResultRejected)
	render.Status(r, status)
	render.JSON(w, r, models.UploadResponse{Success: false, Error: msg})
}

// Namespace кладёт имя в папку, если оно ещё не в ней.
func Namespace(folder, fileName string) string {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	fileName = strings.TrimLeft(fileName, "/")
	if folder == "" || strings.HasPrefix(fileName, folder+"/") {
		return fileName
	}
	return folder + "/" + fileName
}
