package handler

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// LoadAPIDoc разбирает встроенное описание API и проверяет его.
func LoadAPIDoc(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// RegisterDocs отдает описание API в JSON по /api-docs.
func RegisterDocs(e *echo.Echo, doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode openapi document: %w", err)
	}

	e.GET("/api-docs", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, raw)
	})
	return nil
}
