package models

// Тарифы журнала.
const (
	MagazineTypeFree = "free"
	MagazineTypePro  = "pro"
)

// Виды контента. Написание "magzine" совпадает с удалённым API.
const (
	ContentMagazine = "magzine"
	ContentArticle  = "article"
	ContentDigest   = "digest"
)

// DefaultCategory категория, подставляемая при создании журнала без категории.
const DefaultCategory = "other"

// Magazine журнал, принадлежащий удалённому API.
type Magazine struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	MagzineType string  `json:"magzineType"`
	Image       string  `json:"image"`
	File        string  `json:"file"`
	Downloads   int     `json:"downloads,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
}

// MagazineRequest тело запроса на создание журнала.
// Ссылки Image и File заполняются оркестратором загрузки до вызова create.
type MagazineRequest struct {
	Name        string `json:"name" validate:"required"`
	Image       string `json:"image" validate:"required,url"`
	File        string `json:"file" validate:"required,url"`
	Type        string `json:"type" validate:"required,oneof=free pro"`
	MagzineType string `json:"magzineType,omitempty" validate:"omitempty,oneof=magzine article digest"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// WithDefaults подставляет значения по умолчанию для необязательных полей.
func (r MagazineRequest) WithDefaults() MagazineRequest {
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	if r.MagzineType == "" {
		r.MagzineType = ContentMagazine
	}
	return r
}
