package middleware

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// tokenParam carries the JWT for EventSource clients; it must never be logged.
const tokenParam = "access_token"

// RequestLogger is gin's access log with query-string tokens redacted.
func RequestLogger(out io.Writer) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: requestLogFormatter,
		Output:    out,
	})
}

func requestLogFormatter(param gin.LogFormatterParams) string {
	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}
	return fmt.Sprintf("[GIN] %v | %3d | %13v | %15s | %-7s %#v\n%s",
		param.TimeStamp.Format("2006/01/02 - 15:04:05"),
		param.StatusCode,
		param.Latency,
		param.ClientIP,
		param.Method,
		redactQuery(param.Path),
		param.ErrorMessage,
	)
}

// redactQuery masks the token parameter in a path that carries a raw query.
func redactQuery(path string) string {
	i := strings.IndexByte(path, '?')
	if i < 0 {
		return path
	}
	query, err := url.ParseQuery(path[i+1:])
	if err != nil {
		return path[:i]
	}
	if !query.Has(tokenParam) {
		return path
	}
	query.Set(tokenParam, "REDACTED")
	return path[:i+1] + query.Encode()
}
