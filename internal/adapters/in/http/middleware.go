package http

import (
	"crypto/subtle"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/artist-availability-engine/internal/config"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader  = "X-Request-Id"
	requestIDKey     = "requestId"
	basicAuthUserKey = "basicAuthUser"
)

// requestID берет идентификатор запроса из заголовка или создает новый
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		ctx.Set(requestIDKey, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}

func basicAuth(clients []config.ConfigBasicClient) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth || !matchBasicClient(clients, username, password) {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Set(basicAuthUserKey, username)
		ctx.Next()
	}
}

func matchBasicClient(clients []config.ConfigBasicClient, username, password string) bool {
	matched := false
	for _, client := range clients {
		userOk := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1
		passOk := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1
		if userOk && passOk {
			matched = true
		}
	}
	return matched
}

const defaultRateLimitClients = 10000

// rateLimiterStore лимитеры по ключу клиента, давно не обращавшиеся вытесняются
type rateLimiterStore struct {
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
}

func newRateLimiterStore(rps float64, burst int, maxClients int) *rateLimiterStore {
	if maxClients <= 0 {
		maxClients = defaultRateLimitClients
	}
	// Ошибка только при неположительном размере
	limiters, _ := lru.New[string, *rate.Limiter](maxClients)

	return &rateLimiterStore{
		limiters: limiters,
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters.Get(key)
	if !exists {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters.Add(key, limiter)
	}
	return limiter
}

func (s *rateLimiterStore) Len() int {
	return s.limiters.Len()
}

// rateLimit ставится после basicAuth: ключ лимита проверенный пользователь, иначе IP
func rateLimit(store *rateLimiterStore, logger out.LoggerPort) gin.HandlerFunc {
	logger = out.OrNop(logger)
	return func(ctx *gin.Context) {
		key := "ip:" + ctx.ClientIP()
		if username := ctx.GetString(basicAuthUserKey); username != "" {
			key = "user:" + username
		}

		if !store.getLimiter(key).Allow() {
			logger.Warn("http.rate_limit.exceeded", out.LogFields{
				"key":       key,
				"requestId": ctx.GetString(requestIDKey),
			})
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		ctx.Next()
	}
}
