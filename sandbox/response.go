package sandbox

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/paykit/errors"
	"github.com/kbukum/paykit/validation"
)

// Error codes of the sandbox's status=error envelopes.
const (
	CodeInvalidToken     = "010207"
	CodeInvalidBillToken = "010208"
)

var errNotFound = stderrors.New("not found")

// DataResponse is the success envelope.
type DataResponse struct {
	Facade string `json:"facade,omitempty"`
	Data   any    `json:"data"`
}

// respondOK sends a 200 response wrapping data.
func respondOK(c *gin.Context, facade string, data any) {
	c.JSON(http.StatusOK, DataResponse{Facade: facade, Data: data})
}

// respondError sends the single-error envelope {"error": message}.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondAppError sends err as a status=error envelope.
func respondAppError(c *gin.Context, status int, err *errors.AppError) {
	c.AbortWithStatusJSON(status, err.ToEnvelope())
}

// respondInvalid sends each failed field as one entry of the multi-error
// envelope {"errors": [...]}.
func respondInvalid(c *gin.Context, err error) {
	var vErr *validation.Error
	if !stderrors.As(err, &vErr) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	messages := make([]string, len(vErr.Fields))
	for i, f := range vErr.Fields {
		messages[i] = f.Field + ": " + f.Message
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": messages})
}
