package models

// AddCategoryRequest тело POST /api/categories.
type AddCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// RenameCategoryRequest тело PUT /api/categories.
type RenameCategoryRequest struct {
	OldName string `json:"oldName" validate:"required"`
	NewName string `json:"newName" validate:"required"`
}

// DeleteCategoryRequest тело DELETE /api/categories.
type DeleteCategoryRequest struct {
	CategoryName string `json:"categoryName" validate:"required"`
}
