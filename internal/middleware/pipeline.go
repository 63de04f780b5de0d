package middleware

import (
	"strconv"

	"storefront_api/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Outcome is the result of a Check: continue, or terminate with a response
type Outcome struct {
	Status  int
	Message string
}

// Continue lets the pipeline run the next check
var Continue = Outcome{}

// Terminate stops the pipeline and answers {"error": message} with status
func Terminate(status int, message string) Outcome {
	return Outcome{Status: status, Message: message}
}

func (o Outcome) terminates() bool {
	return o.Status != 0
}

// Check is one capability check of an auth pipeline
type Check interface {
	Check(c *gin.Context) Outcome
}

// CheckFunc adapts a function to Check
type CheckFunc func(c *gin.Context) Outcome

func (f CheckFunc) Check(c *gin.Context) Outcome {
	return f(c)
}

// Pipeline runs checks in declared order. The first terminating check aborts
// the request with exactly one JSON response; later checks and the handler
// never run.
func Pipeline(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, check := range checks {
			out := check.Check(c)
			if out.terminates() {
				metrics.AuthRejectionsTotal.WithLabelValues(strconv.Itoa(out.Status)).Inc()
				c.AbortWithStatusJSON(out.Status, gin.H{"error": out.Message})
				return
			}
		}
		c.Next()
	}
}
