package console

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/magazine-admin/internal/models"
	"github.com/magabrotheeeer/magazine-admin/internal/upload"
)

// PublishForm поля формы создания журнала.
type PublishForm struct {
	Name        string `validate:"required"`
	Description string
	Category    string
	Type        string `validate:"required,oneof=free pro"`
	MagzineType string `validate:"omitempty,oneof=magzine article digest"`
}

// PublishResult итог отправки формы. FieldErrors заполняется, если
// форма не дошла до создания журнала.
type PublishResult struct {
	Result[json.RawMessage]
	Cover       *models.UploadJob
	Document    *models.UploadJob
	FieldErrors map[string]string
}

// PublishProgress получает прогресс по полю формы: coverImage или pdfFile.
type PublishProgress func(field string, percent int)

var formValidate = validator.New()

// PublishMagazine загружает обложку и PDF, затем создаёт журнал
// с полученными публичными ссылками. Любая ошибка загрузки прерывает
// отправку до вызова create.
func (c *Client) PublishMagazine(
	ctx context.Context,
	o *upload.Orchestrator,
	form PublishForm,
	cover, document upload.File,
	progress PublishProgress,
) PublishResult {
	res := PublishResult{FieldErrors: map[string]string{}}

	if err := formValidate.Struct(form); err != nil {
		if verrs, isV := err.(validator.ValidationErrors); isV {
			for _, fe := range verrs {
				res.FieldErrors[fe.Field()] = formMessage(fe)
			}
		}
		res.Result = fail[json.RawMessage]("Please fix the form errors")
		return res
	}
	if !c.IsAuthenticated() {
		res.Result = fail[json.RawMessage](MsgNoToken)
		return res
	}

	report := func(field string) upload.ProgressFunc {
		return func(pct int) {
			if progress != nil {
				progress(field, pct)
			}
		}
	}

	res.Cover = o.Run(ctx, "coverImage", upload.KindImage, upload.FolderCovers, cover, report("coverImage"))
	if res.Cover.Err != nil {
		res.FieldErrors["coverImage"] = uploadMessage(res.Cover, "Failed to upload cover image")
		res.Result = fail[json.RawMessage](res.FieldErrors["coverImage"])
		return res
	}

	res.Document = o.Run(ctx, "pdfFile", upload.KindDocument, upload.FolderFiles, document, report("pdfFile"))
	if res.Document.Err != nil {
		res.FieldErrors["pdfFile"] = uploadMessage(res.Document, "Failed to upload PDF file")
		res.Result = fail[json.RawMessage](res.FieldErrors["pdfFile"])
		return res
	}

	c.log.Info("files uploaded",
		slog.String("strategy", o.Strategy()),
		slog.String("image", res.Cover.ResultURL),
		slog.String("file", res.Document.ResultURL),
	)

	res.Result = c.CreateMagazine(ctx, models.MagazineRequest{
		Name:        form.Name,
		Description: form.Description,
		Category:    form.Category,
		Type:        form.Type,
		MagzineType: form.MagzineType,
		Image:       res.Cover.ResultURL,
		File:        res.Document.ResultURL,
	}.WithDefaults())
	if res.Success {
		res.FieldErrors = nil
	}
	return res
}

func uploadMessage(job *models.UploadJob, fallback string) string {
	var fe *upload.FieldError
	if !errors.As(job.Err, &fe) || fe.Message == "" {
		return fallback
	}
	if upload.IsValidation(job) {
		return fe.Message
	}
	return fallback + ": " + fe.Message
}

func formMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
