package middleware

import (
	"errors"
	"time"

	"github.com/go-resty/resty/v2"

	"gomarketplace_sync/metrics"
	"gomarketplace_sync/pkg/logger"
)

// PrometheusMiddleware подключает к клиенту сбор метрик по каждому запросу.
// Запросы, не получившие ответа, учитываются со статусом 0.
func PrometheusMiddleware(client *resty.Client) *resty.Client {
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		metrics.RecordRequest(resp.Request.Method, requestPath(resp.Request), resp.StatusCode(), resp.Time())
		return nil
	})
	// Сюда попадают и ответы, которые не удалось разобрать: OnAfterResponse для них не вызывается.
	client.OnError(func(req *resty.Request, err error) {
		status, elapsed := 0, sinceRequest(req)
		var respErr *resty.ResponseError
		if errors.As(err, &respErr) && respErr.Response != nil {
			status, elapsed = respErr.Response.StatusCode(), respErr.Response.Time()
		}
		metrics.RecordRequest(req.Method, requestPath(req), status, elapsed)
	})
	return client
}

// LoggingMiddleware пишет в лог метод, путь, статус и длительность каждого запроса.
func LoggingMiddleware(client *resty.Client, log logger.Logger) *resty.Client {
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.Log("%s %s -> %d in %s (%d bytes)",
			resp.Request.Method, requestPath(resp.Request), resp.StatusCode(), resp.Time().Round(time.Millisecond), resp.Size())
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		log.Error("%s %s failed: %v", req.Method, requestPath(req), err)
	})
	return client
}

func requestPath(req *resty.Request) string {
	if req.RawRequest != nil && req.RawRequest.URL != nil {
		return req.RawRequest.URL.Path
	}
	return req.URL
}

func sinceRequest(req *resty.Request) time.Duration {
	if req.Time.IsZero() {
		return 0
	}
	return time.Since(req.Time)
}
