package ez

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cutconnect/internal/domain"
	"cutconnect/internal/store"
	resp "cutconnect/internal/transport/http/response"
	"cutconnect/internal/validation"
)

type EZ struct {
	g   gin.IRouter
	log *zap.Logger
}

func New(g gin.IRouter, l *zap.Logger) EZ { return EZ{g: g, log: l} }

type Binder string

const (
	BindJSON  Binder = "json"  // request body, validated
	BindQuery Binder = "query" // ?a=b via `form` tags, validated
	BindNone  Binder = "none"
)

// AErr carries an explicit status and detail out of a handler.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string, err error) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg, Err: err} }
func NotFound(msg string, err error) error   { return &AErr{Code: resp.CodeNotFound, Msg: msg, Err: err} }
func Internal(msg string, err error) error   { return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err} }

// Action is one endpoint: I is the bound input, O the JSON output.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			e.fail(c, err)
			return
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

func bind(c *gin.Context, b Binder, in any) error {
	switch b {
	case BindJSON:
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return &AErr{Code: resp.CodeTooLarge, Err: err}
			}
			return BadRequest("unreadable body", err)
		}
		return validation.Decode(body, in)
	case BindQuery:
		return validation.Query(c.Request.URL.Query(), in)
	}
	return nil
}

func (e EZ) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		c.JSON(resp.CodeUnprocessable, resp.Validation(ve))
		return
	}
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Code >= http.StatusInternalServerError {
			e.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		}
		msg := ae.Msg
		if ae.Code >= http.StatusInternalServerError {
			msg = ""
		}
		c.JSON(ae.Code, resp.Error(ae.Code, msg))
		return
	}
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		c.JSON(resp.CodeBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(resp.CodeNotFound, resp.Error(resp.CodeNotFound, err.Error()))
	case store.IsStorageError(err):
		// a store call that hit the request deadline is still a storage failure
		e.log.Error("store failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(resp.CodeServerError, resp.Error(resp.CodeServerError, ""))
	case errors.Is(err, context.DeadlineExceeded):
		e.log.Warn("request timed out", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(resp.CodeTimeout, resp.Error(resp.CodeTimeout, ""))
	default:
		e.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(resp.CodeServerError, resp.Error(resp.CodeServerError, ""))
	}
}
