package router

import (
	"net/http"
	"strings"

	"github.com/finds-lab/backend/pkg/errorx"
	"github.com/finds-lab/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

// statusCoder lets a response model override the default 200 status.
type statusCoder interface {
	StatusCode() int
}

func wrapHandler[Request, Response any](
	router *Router,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := router.befores
	afters := router.afters
	closers := router.closers

	return func(ginCtx *gin.Context) {
		ctx := router.baseContext(ginCtx)

		func() {
			for _, m := range befores {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}

			var req Request
			if err := bindRequest(ginCtx, &req); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot bind the request: %v", err)
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
				return
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}
			xcontext.SetResponse(ctx, resp)

			for _, m := range afters {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}
		}()

		if err := xcontext.Error(ctx); err != nil {
			writeError(ginCtx, err)
		} else if resp := xcontext.Response(ctx); resp != nil {
			status := http.StatusOK
			if coder, ok := resp.(statusCoder); ok {
				status = coder.StatusCode()
			}
			ginCtx.JSON(status, resp)
		}

		for _, closer := range closers {
			closer(ctx)
		}
	}
}

func bindRequest(ginCtx *gin.Context, req any) error {
	if len(ginCtx.Params) > 0 {
		if err := ginCtx.ShouldBindUri(req); err != nil {
			return err
		}
	}

	switch ginCtx.Request.Method {
	case http.MethodGet, http.MethodDelete:
		return ginCtx.ShouldBindQuery(req)
	default:
		// Multipart bodies are read by the handler through the raw request.
		contentType := ginCtx.ContentType()
		if strings.HasPrefix(contentType, "multipart/") || contentType == "" {
			return nil
		}
		if ginCtx.Request.ContentLength == 0 {
			return nil
		}
		return ginCtx.ShouldBindJSON(req)
	}
}

func writeError(ginCtx *gin.Context, err error) {
	errx := errorx.Unknown
	if x, ok := err.(errorx.Error); ok {
		errx = x
	}

	ginCtx.JSON(httpStatus(errx.Code), gin.H{"error": errx.Message})
}

func httpStatus(code errorx.Code) int {
	switch code {
	case errorx.BadRequest:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
