package commerceapi

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/models"
)

// FaultInjector answers a fraction of requests with 503 Service Unavailable.
type FaultInjector struct {
	mu   sync.Mutex
	rate float64
	rng  *rand.Rand
}

func NewFaultInjector(rate float64, seed int64) *FaultInjector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &FaultInjector{
		rate: rate,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// SetRate changes the failure fraction; 0 disables injection, 1 fails everything.
func (f *FaultInjector) SetRate(rate float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = rate
}

func (f *FaultInjector) shouldFail() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rate <= 0 {
		return false
	}
	return f.rng.Float64() < f.rate
}

func (f *FaultInjector) Middleware(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !f.shouldFail() {
			c.Next()
			return
		}
		log.WithFields(logrus.Fields{"method": c.Request.Method, "path": c.FullPath()}).Warn("simulating 503 failure")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "SERVICE_UNAVAILABLE",
			Message: "Service temporarily unavailable",
			Details: "This is a simulated failure",
		})
	}
}
