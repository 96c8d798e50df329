package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSuccessAndCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "success", body["status"])
	require.Equal(t, "bar", body["data"].(map[string]any)["foo"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Created(c, gin.H{"id": "abc"})
	require.Equal(t, 201, w.Code)
}

func TestErrorHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	NotFound(c, "Item not found", "ITEM_NOT_FOUND")
	require.Equal(t, 404, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Item not found", body["error"])
	require.Equal(t, "ITEM_NOT_FOUND", body["code"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Forbidden(c, "Not authorized to update this item")
	require.Equal(t, 403, w.Code)
}

func TestValidationFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ValidationFailed(c, []FieldError{
		{Field: "category", Message: "must be one of the allowed categories"},
		{Field: "title", Message: "is required"},
	})

	require.Equal(t, 422, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "VALIDATION_FAILED", body["code"])

	fields := body["fields"].([]any)
	require.Len(t, fields, 2)
	require.Equal(t, "category", fields[0].(map[string]any)["field"])
}
