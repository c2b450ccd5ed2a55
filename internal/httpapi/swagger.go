package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"

	httpSwagger "github.com/swaggo/http-swagger"
)

// openAPIDoc is the swagger 2.0 description of the resolver endpoints.
const openAPIDoc = `{
  "swagger": "2.0",
  "info": {
    "title": "loramgr pool resolver",
    "description": "Resolves LoRA pool filter criteria into an ordered list of LoRAs.",
    "version": "1.0"
  },
  "basePath": "/",
  "schemes": ["http"],
  "paths": {
    "/api/lm/loras": {
      "get": {
        "summary": "List every LoRA in the library",
        "produces": ["application/json"],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/LorasResponse"}},
          "503": {"description": "Library unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
        }
      }
    },
    "/api/lm/loras/pool": {
      "post": {
        "summary": "Resolve a pool",
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "parameters": [
          {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/PoolRequest"}}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/PoolResponse"}},
          "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
          "415": {"description": "Wrong content type", "schema": {"$ref": "#/definitions/ErrorResponse"}}
        }
      }
    },
    "/api/lm/loras/rescan": {
      "post": {"summary": "Drop the cached library scan", "responses": {"204": {"description": "No Content"}}}
    }
  },
  "definitions": {
    "IncludeExclude": {
      "type": "object",
      "properties": {
        "include": {"type": "array", "items": {"type": "string"}},
        "exclude": {"type": "array", "items": {"type": "string"}}
      }
    },
    "PoolFilterConfig": {
      "type": "object",
      "properties": {
        "base_models": {"type": "array", "items": {"type": "string"}},
        "tags": {"$ref": "#/definitions/IncludeExclude"},
        "folders": {"$ref": "#/definitions/IncludeExclude"},
        "license": {
          "type": "object",
          "properties": {
            "no_credit_required": {"type": "boolean"},
            "allow_selling": {"type": "boolean"}
          }
        }
      }
    },
    "PoolRequest": {
      "type": "object",
      "properties": {
        "pool_config": {"$ref": "#/definitions/PoolFilterConfig"},
        "sort_by": {"type": "string", "enum": ["filename", "model_name"]}
      }
    },
    "PoolItem": {
      "type": "object",
      "properties": {
        "file_name": {"type": "string"},
        "model_name": {"type": "string"},
        "file_path": {"type": "string"},
        "preview_url": {"type": "string"},
        "recommended_strength": {"type": "number"},
        "recommended_clip_strength": {"type": "number"}
      }
    },
    "PoolResponse": {
      "type": "object",
      "properties": {
        "items": {"type": "array", "items": {"$ref": "#/definitions/PoolItem"}},
        "total_count": {"type": "integer"}
      }
    },
    "LorasResponse": {
      "type": "object",
      "properties": {
        "loras": {"type": "array", "items": {"type": "object"}}
      }
    },
    "ErrorResponse": {
      "type": "object",
      "properties": {
        "error": {"type": "string"},
        "code": {"type": "integer"}
      }
    }
  }
}`

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string { return openAPIDoc }

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}

// MountSwagger serves the Swagger UI and doc.json under /swagger/.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
