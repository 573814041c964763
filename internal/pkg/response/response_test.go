package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

func TestBadRequestWithAmount(t *testing.T) {
	status, payload := perform(t, func(c *fiber.Ctx) error {
		return BadRequestWithAmount(c, "payment below minimum", "required_minimum", 600)
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "payment below minimum", payload["error"])
	assert.Equal(t, 600.0, payload["required_minimum"])
	amounts, ok := payload["amounts"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 600.0, amounts["required_minimum"])
}

func TestErrorOmitsEmptyFields(t *testing.T) {
	status, payload := perform(t, func(c *fiber.Ctx) error {
		return NotFound(c, "storage record not found")
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "storage record not found", payload["error"])
	assert.NotContains(t, payload, "data")
	assert.NotContains(t, payload, "message")
	assert.NotContains(t, payload, "amounts")
}

func TestSuccessEnvelope(t *testing.T) {
	status, payload := perform(t, func(c *fiber.Ctx) error {
		return Success(c, "ok", fiber.Map{"id": 1})
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "ok", payload["message"])
	require.Contains(t, payload, "data")
}
