package upload

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Папки в бакете.
const (
	FolderCovers = "magazines/covers"
	FolderFiles  = "magazines/files"
)

// FolderFor папка по умолчанию для вида файла.
func FolderFor(kind Kind) string {
	if kind == KindDocument {
		return FolderFiles
	}
	return FolderCovers
}

// RandomSuffix короткая случайная строка для имени объекта.
func RandomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// ObjectKey собирает ключ объекта вида <folder>/<unix-ms>-<random>.<ext>.
func ObjectKey(folder, fileName string, now time.Time, random string) string {
	folder = strings.Trim(folder, "/")
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), random)
	if ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), ".")); ext != "" {
		name += "." + ext
	}
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// PublicURL склеивает публичный адрес объекта.
func PublicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
