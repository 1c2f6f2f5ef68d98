package middleware

import (
	"bytes"
	"time"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/domain/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// IdempotencyKeyHeader is the HTTP header carrying the client's key
	IdempotencyKeyHeader = "Idempotency-Key"
	// idempotencyKeyTTL is how long processed keys keep replaying
	idempotencyKeyTTL = 24 * time.Hour
)

type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CheckoutIdempotency guards checkout against double submits from a
// flaky register connection. The key is required; a replayed key returns
// the recorded response instead of charging the cart twice.
func CheckoutIdempotency(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(400, gin.H{
				"success": false,
				"message": "Idempotency-Key header is required for checkout",
			})
			return
		}

		userIDValue, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(401, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{
				"success": false,
				"message": "Invalid user ID",
			})
			return
		}

		existing, err := repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			c.AbortWithStatusJSON(500, gin.H{
				"success": false,
				"message": "Failed to check idempotency key",
			})
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		recorder := &responseRecorder{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		// Only successful checkouts replay; a failed attempt may be retried
		// with the same key.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = repo.Create(c.Request.Context(), &entity.IdempotencyKey{
				Key:          key,
				UserID:       userID,
				Endpoint:     c.Request.Method + " " + c.FullPath(),
				ResponseCode: c.Writer.Status(),
				ResponseBody: recorder.body.String(),
				ExpiresAt:    time.Now().Add(idempotencyKeyTTL),
			})
		}
	}
}
