package router

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agrichain-lab/backend/internal/common"
	"github.com/agrichain-lab/backend/pkg/errorx"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		startTime := time.Now()

		var req Request
		var err error
		switch method {
		case "GET":
			err = ginCtx.BindQuery(&req)
		case "POST":
			err = ginCtx.BindJSON(&req)
		default:
			err = errors.New("unsupported method")
		}
		if err != nil {
			ginCtx.JSON(http.StatusBadRequest, newErrorResponse(err))
			recordRequest(ginCtx.Request.URL.Path, err, startTime)
			return
		}

		ctx := xcontext.WithHTTPRequest(router.baseCtx, ginCtx.Request)
		for _, middleware := range router.befores {
			ctx, err = middleware(ctx)
			if err != nil {
				ginCtx.JSON(http.StatusOK, newErrorResponse(err))
				recordRequest(ginCtx.Request.URL.Path, err, startTime)
				return
			}
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			xcontext.Logger(ctx).Debugf("%s %s: %v", method, ginCtx.Request.URL.Path, err)
			ginCtx.JSON(http.StatusOK, newErrorResponse(err))
			recordRequest(ginCtx.Request.URL.Path, err, startTime)
			return
		}

		ginCtx.JSON(http.StatusOK, newResponse(resp))
		recordRequest(ginCtx.Request.URL.Path, nil, startTime)
	}
}

func recordRequest(path string, err error, startTime time.Time) {
	code := 0
	if err != nil {
		var errx errorx.Error
		if errors.As(err, &errx) {
			code = int(errx.Code)
		} else {
			code = -1
		}
	}

	common.PromCounters[common.HTTPRequestTotal].
		WithLabelValues(path, fmt.Sprint(code)).Inc()
	common.PromHistograms[common.HTTPRequestDurationSeconds].
		WithLabelValues(path, fmt.Sprint(code)).Observe(time.Since(startTime).Seconds())
}
