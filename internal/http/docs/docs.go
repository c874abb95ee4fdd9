// Package docs описание API прокси для /docs. Поддерживается вместе с
// аннотациями обработчиков.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/upload": {
            "post": {
                "tags": ["Upload"],
                "summary": "Загрузить файл через прокси",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "fileName", "in": "formData", "required": true},
                    {"type": "string", "name": "folder", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.UploadResponse"}},
                    "413": {"description": "Too Large", "schema": {"$ref": "#/definitions/models.UploadResponse"}}
                }
            }
        },
        "/api/r2-url": {
            "post": {
                "tags": ["Upload"],
                "summary": "Получить подписанную ссылку для загрузки",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SignedURLRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SignedURLResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.SignedURLResponse"}}
                }
            }
        },
        "/api/magazines/create": {
            "post": {
                "tags": ["Magazines"],
                "summary": "Создать журнал",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.MagazineRequest"}}
                ],
                "responses": {
                    "200": {"description": "Ответ удалённого API"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "tags": ["Users"],
                "summary": "Список пользователей",
                "parameters": [{"type": "string", "name": "Authorization", "in": "header", "required": true}],
                "responses": {"200": {"description": "Ответ удалённого API"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/users/{uid}": {
            "get": {
                "tags": ["Users"],
                "summary": "Пользователь по uid",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "name": "uid", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Ответ удалённого API"}, "401": {"description": "Unauthorized"}}
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Удалить пользователя",
                "parameters": [
                    {"type": "string", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "name": "uid", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Ответ удалённого API"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/magazines": {
            "get": {
                "tags": ["Magazines"],
                "summary": "Список журналов",
                "parameters": [{"type": "string", "name": "Authorization", "in": "header", "required": true}],
                "responses": {"200": {"description": "Ответ удалённого API"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/categories": {
            "get": {"tags": ["Categories"], "summary": "Список категорий", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}},
            "post": {
                "tags": ["Categories"], "summary": "Добавить категорию",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AddCategoryRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}, "400": {"description": "Bad Request"}}
            },
            "put": {
                "tags": ["Categories"], "summary": "Переименовать категорию",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RenameCategoryRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["Categories"], "summary": "Удалить категорию",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.DeleteCategoryRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}, "404": {"description": "Not Found"}}
            }
        },
        "/healthz": {
            "get": {"tags": ["Health"], "summary": "Проверка готовности", "responses": {"200": {"description": "OK"}, "503": {"description": "Unavailable"}}}
        }
    },
    "definitions": {
        "models.UploadResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "url": {"type": "string"}, "error": {"type": "string"}}},
        "models.SignedURLRequest": {"type": "object", "required": ["fileName", "fileType"], "properties": {"fileName": {"type": "string"}, "fileType": {"type": "string"}}},
        "models.SignedURLResponse": {"type": "object", "properties": {"uploadURL": {"type": "string"}, "key": {"type": "string"}, "error": {"type": "string"}}},
        "models.MagazineRequest": {
            "type": "object",
            "required": ["name", "image", "file", "type"],
            "properties": {
                "name": {"type": "string"},
                "image": {"type": "string"},
                "file": {"type": "string"},
                "type": {"type": "string", "enum": ["free", "pro"]},
                "magzineType": {"type": "string", "enum": ["magzine", "article", "digest"]},
                "description": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "models.AddCategoryRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}},
        "models.RenameCategoryRequest": {"type": "object", "required": ["oldName", "newName"], "properties": {"oldName": {"type": "string"}, "newName": {"type": "string"}}},
        "models.DeleteCategoryRequest": {"type": "object", "required": ["categoryName"], "properties": {"categoryName": {"type": "string"}}},
        "response.Response": {"type": "object", "properties": {"success": {"type": "boolean"}, "data": {}, "message": {"type": "string"}, "error": {"type": "string"}}},
        "response.ErrorResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "error": {"type": "string"}}}
    }
}`

// SwaggerInfo метаданные описания.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Magazine Admin Proxy API",
	Description:      "Прокси консоли администратора: загрузка файлов, пересылка в удалённый API, категории.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
