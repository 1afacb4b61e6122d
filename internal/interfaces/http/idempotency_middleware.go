package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
)

// HeaderIdempotencyKey header con el que el cliente marca un reintento.
const HeaderIdempotencyKey = "Idempotency-Key"

// IdempotencyStore guarda respuestas ya enviadas (implementado sobre Redis).
type IdempotencyStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type storedResponse struct {
	RequestHash string `json:"request_hash"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

func requestHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// Idempotency repite la respuesta 2xx guardada cuando llega la misma Idempotency-Key
// para el mismo método y ruta con el mismo cuerpo. La misma clave con otro cuerpo
// se rechaza con 422. Sin header o sin store no hace nada.
// Si el store falla la petición se procesa igual.
func Idempotency(store IdempotencyStore, ttl time.Duration, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(HeaderIdempotencyKey)
		if store == nil || header == "" {
			return c.Next()
		}
		key := c.Method() + ":" + c.Path() + ":" + header
		hash := requestHash(c.Body())

		data, found, err := store.Get(c.UserContext(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", header).Msg("idempotency: lectura fallida")
		}
		if found {
			var prev storedResponse
			if err := json.Unmarshal(data, &prev); err == nil {
				if prev.RequestHash != hash {
					return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
						Code:    "IDEMPOTENCY_KEY_REUSED",
						Message: "la Idempotency-Key ya se usó con otro cuerpo",
					})
				}
				c.Set("Idempotent-Replayed", "true")
				c.Set(fiber.HeaderContentType, prev.ContentType)
				return c.Status(prev.Status).Send(prev.Body)
			}
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}
		out, err := json.Marshal(storedResponse{
			RequestHash: hash,
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		})
		if err != nil {
			return nil
		}
		if err := store.Set(c.UserContext(), key, out, ttl); err != nil {
			log.Warn().Err(err).Str("key", header).Msg("idempotency: escritura fallida")
		}
		return nil
	}
}
