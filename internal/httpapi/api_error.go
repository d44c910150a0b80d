package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/John-Robertt/subhub-go/internal/compiler"
	"github.com/John-Robertt/subhub-go/internal/model"
	"github.com/John-Robertt/subhub-go/internal/render"
	"github.com/John-Robertt/subhub-go/internal/store"
	"github.com/John-Robertt/subhub-go/internal/sub"
)

// APIError is used by the HTTP layer for a few HTTP-specific errors.
type APIError struct {
	Status   int
	AppError model.AppError
	Cause    error
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *APIError) Unwrap() error { return e.Cause }

func apiError(status int, app model.AppError, cause error) error {
	return &APIError{Status: status, AppError: app, Cause: cause}
}

var errNoSource = apiError(http.StatusServiceUnavailable, model.AppError{
	Code:    "SOURCE_UNAVAILABLE",
	Message: "订阅存储未加载",
	Stage:   "store",
}, nil)

// classify maps an error to its HTTP status and payload.
func classify(err error) (int, model.AppError) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status, ae.AppError
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, model.AppError{
			Code:    "CONVERT_TIMEOUT",
			Message: "订阅转换超时",
			Stage:   "render",
		}
	}
	if errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable, model.AppError{
			Code:    "CANCELED",
			Message: "请求已取消",
			Stage:   "render",
		}
	}

	var ste *store.Error
	if errors.As(err, &ste) {
		if ste.AppError.Code == store.CodeNotFound {
			return http.StatusNotFound, ste.AppError
		}
		return http.StatusUnprocessableEntity, ste.AppError
	}

	var re *render.RenderError
	if errors.As(err, &re) {
		if re.AppError.Code == "UNSUPPORTED_TARGET" {
			return http.StatusNotFound, re.AppError
		}
		return http.StatusUnprocessableEntity, re.AppError
	}

	var ce *compiler.CompileError
	if errors.As(err, &ce) {
		return http.StatusUnprocessableEntity, ce.AppError
	}

	var pe *sub.ParseError
	if errors.As(err, &pe) {
		return http.StatusUnprocessableEntity, pe.AppError
	}

	// Fallback: internal bug.
	return http.StatusInternalServerError, model.AppError{
		Code:    "INTERNAL_ERROR",
		Message: "服务端内部错误",
		Stage:   "internal",
		Hint:    err.Error(),
	}
}

func (s *server) writeErrorFromErr(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status, app := classify(err)
	s.metrics.incAppError(app.Stage, app.Code)
	WriteError(w, status, app)
}
