package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/bikecast/bikecast/core"
	"github.com/gin-gonic/gin"
)

// maxBodyBytes bounds the size of a prediction request.
const maxBodyBytes = 1 << 20

func (s *Server) handlePredict(c *gin.Context) {
	attrs, err := decodeRequest(c)
	if err != nil {
		out := core.OutcomeFromError(err)
		c.JSON(out.StatusCode, gin.H{"error": out.Error})
		return
	}

	out := s.svc.Predict(attrs)
	if !out.OK() {
		c.JSON(out.StatusCode, gin.H{"error": out.Error})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction": out.Result.Prediction,
		"status":     "success",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleModel(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Predictor().Table().Describe(s.opts.Scaling))
}

// isJSONContentType reports whether the request declares a JSON body.
func isJSONContentType(ct string) bool {
	return ct == "application/json" || (strings.HasPrefix(ct, "application/") && strings.HasSuffix(ct, "+json"))
}

// decodeRequest reads a single JSON object from the request body.
// Numbers are kept as json.Number so large values are not rounded.
func decodeRequest(c *gin.Context) (map[string]any, error) {
	if !isJSONContentType(c.ContentType()) {
		return nil, core.NewMalformedInputError(core.MsgNotJSON, errors.New("content type "+c.ContentType()))
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, core.NewMalformedInputError(core.MsgInvalidJSON, err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, core.NewMalformedInputError(core.MsgInvalidJSON, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, core.NewMalformedInputError(core.MsgInvalidJSON, errors.New("trailing data after JSON value"))
	}

	attrs, ok := payload.(map[string]any)
	if !ok {
		return nil, core.NewMalformedInputError(core.MsgInvalidJSON, errors.New("payload is not a JSON object"))
	}
	return attrs, nil
}
