package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

// Контрольные точки прогресса. Прогресс условный, байты не считаются.
const (
	ProgressPrepared = 25
	ProgressSent     = 50
	ProgressStored   = 75
	ProgressDone     = 100
)

// ProgressFunc получает процент выполнения.
type ProgressFunc func(percent int)

func (p ProgressFunc) report(pct int) {
	if p != nil {
		p(pct)
	}
}

// File файл для загрузки.
type File struct {
	FileInfo
	Body io.Reader
}

// Uploader стратегия загрузки. Вызывается только для уже проверенного файла.
type Uploader interface {
	Upload(ctx context.Context, f File, key string, progress ProgressFunc) (string, error)
	Name() string
}

// Orchestrator проверяет файл, строит ключ и передаёт файл стратегии.
type Orchestrator struct {
	uploader Uploader
	now      func() time.Time
	random   func() string
}

// NewOrchestrator создаёт оркестратор поверх стратегии.
func NewOrchestrator(u Uploader) *Orchestrator {
	return &Orchestrator{uploader: u, now: time.Now, random: RandomSuffix}
}

// Strategy имя стратегии.
func (o *Orchestrator) Strategy() string { return o.uploader.Name() }

// Run загружает файл в folder и возвращает состояние задания.
// Ошибка проверки прерывает задание до любого сетевого вызова.
func (o *Orchestrator) Run(ctx context.Context, field string, kind Kind, folder string, f File, progress ProgressFunc) *models.UploadJob {
	if folder == "" {
		folder = FolderFor(kind)
	}
	job := &models.UploadJob{FileName: f.Name, Folder: folder}
	track := func(pct int) {
		job.Progress = pct
		progress.report(pct)
	}

	if err := Validate(field, f.FileInfo, kind); err != nil {
		job.Err = err
		return job
	}

	key := ObjectKey(folder, f.Name, o.now(), o.random())
	url, err := o.uploader.Upload(ctx, f, key, track)
	if err != nil {
		job.Err = &FieldError{Field: field, Message: err.Error()}
		return job
	}
	job.ResultURL = url
	track(ProgressDone)
	return job
}

// IsValidation сообщает, что задание прервано проверкой, а не сетью.
func IsValidation(job *models.UploadJob) bool {
	var fe *FieldError
	return job.Err != nil && errors.As(job.Err, &fe) && job.Progress == 0
}

// OpenFile открывает локальный файл. Тип определяется по расширению,
// если расширение неизвестно, по первым байтам содержимого.
func OpenFile(path string) (File, io.Closer, error) {
	const op = "upload.OpenFile"
	fh, err := os.Open(path)
	if err != nil {
		return File{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	st, err := fh.Stat()
	if err != nil {
		fh.Close()
		return File{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(fh, head)
		ct = http.DetectContentType(head[:n])
		if _, err := fh.Seek(0, io.SeekStart); err != nil {
			fh.Close()
			return File{}, nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		ct = mt
	}

	return File{
		FileInfo: FileInfo{Name: filepath.Base(path), ContentType: ct, Size: st.Size()},
		Body:     fh,
	}, fh, nil
}
