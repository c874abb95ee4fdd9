// Package upload загружает обложки и PDF журналов в объектное хранилище.
//
// Перед любой сетевой операцией файл проверяется по типу и размеру.
// Дальше работает одна из двух стратегий: подписанная ссылка (прямой PUT
// в хранилище) или загрузка через прокси-сервер.
package upload

import (
	"fmt"
	"slices"
	"strings"
)

// Kind вид загружаемого файла.
type Kind int

const (
	// KindImage обложка журнала.
	KindImage Kind = iota
	// KindDocument файл журнала (PDF).
	KindDocument
)

func (k Kind) String() string {
	if k == KindDocument {
		return "document"
	}
	return "image"
}

// Rule допустимые MIME-типы и предельный размер для вида файла.
type Rule struct {
	Types   []string
	MaxSize int64
}

// Rules правила проверки по видам.
var Rules = map[Kind]Rule{
	KindImage:    {Types: []string{"image/jpeg", "image/png", "image/webp"}, MaxSize: 10 << 20},
	KindDocument: {Types: []string{"application/pdf"}, MaxSize: 50 << 20},
}

// AllowedTypes объединение всех допустимых типов; прокси принимает любой из них.
func AllowedTypes() []string {
	var all []string
	for _, k := range []Kind{KindImage, KindDocument} {
		all = append(all, Rules[k].Types...)
	}
	return all
}

// TypeAllowed сообщает, входит ли тип в объединённый список.
func TypeAllowed(contentType string) bool {
	return slices.Contains(AllowedTypes(), contentType)
}

// FileInfo заявленные свойства файла.
type FileInfo struct {
	Name        string
	ContentType string
	Size        int64
}

// FieldError ошибка проверки, привязанная к полю формы.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate проверяет файл для поля field по правилу вида kind.
// Возвращает *FieldError или nil.
func Validate(field string, f FileInfo, kind Kind) error {
	rule := Rules[kind]
	if !slices.Contains(rule.Types, f.ContentType) {
		return &FieldError{
			Field:   field,
			Message: fmt.Sprintf("File type %s is not allowed. Allowed types: %s", f.ContentType, strings.Join(rule.Types, ", ")),
		}
	}
	if f.Size <= 0 {
		return &FieldError{Field: field, Message: "File is empty"}
	}
	if f.Size > rule.MaxSize {
		return &FieldError{
			Field: field,
			Message: fmt.Sprintf("File size %.2fMB exceeds maximum size of %.2fMB",
				float64(f.Size)/1024/1024, float64(rule.MaxSize)/1024/1024),
		}
	}
	return nil
}
