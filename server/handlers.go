package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alan-mat/careerpath/internal/guidance"
	"github.com/alan-mat/careerpath/internal/logctx"
)

// HeaderSource names the resolver that answered a search.
const HeaderSource = "X-Guidance-Source"

func (s *Server) search(c *gin.Context) {
	ctx := c.Request.Context()
	l := logctx.From(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			l.Warn("search request body too large", "limit", maxErr.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, &guidance.ValidationError{Message: "Request body too large"})
			return
		}
		l.Error("failed to read search request", "err", err)
		internalError(c)
		return
	}

	res, err := s.searcher.Search(ctx, body)
	if err != nil {
		var verr *guidance.ValidationError
		if errors.As(err, &verr) {
			l.Warn("invalid search request", "field", verr.Field, "message", verr.Message)
			c.JSON(http.StatusBadRequest, verr)
			return
		}
		l.Error("search failed", "err", err)
		internalError(c)
		return
	}

	c.Header(HeaderSource, string(res.Source))
	c.JSON(http.StatusOK, res.Response)
}
