package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mattiasalardi/VDP/openrouter"
	"github.com/Mattiasalardi/VDP/service"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondBadRequest(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
}

// respondServiceError maps service and upstream errors onto HTTP statuses.
// All not-found variants share one shape, so a caller probing another
// organization's resources learns nothing.
func respondServiceError(c *gin.Context, err error) {
	var rateErr *service.RateLimitError
	var validationErr *service.ValidationError
	var inputErr *service.InputError
	var upstreamErr *openrouter.UpstreamError

	switch {
	case errors.As(err, &inputErr):
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", inputErr.Error())

	case errors.Is(err, service.ErrProgramNotFound),
		errors.Is(err, service.ErrQuestionnaireNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, service.ErrVersionNotFound),
		errors.Is(err, service.ErrCalibrationAnswerNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())

	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "EMAIL_TAKEN", err.Error())

	case errors.Is(err, service.ErrProgramNameTaken):
		respondError(c, http.StatusConflict, "PROGRAM_NAME_TAKEN", err.Error())

	case errors.Is(err, service.ErrAlreadySubmitted):
		respondError(c, http.StatusConflict, "ALREADY_SUBMITTED", err.Error())

	case errors.Is(err, service.ErrNoCalibrationData):
		respondError(c, http.StatusBadRequest, "NO_CALIBRATION_DATA", err.Error())

	case errors.Is(err, service.ErrQuestionLimit):
		respondError(c, http.StatusBadRequest, "QUESTION_LIMIT_REACHED", err.Error())

	case errors.As(err, &rateErr):
		c.Header("Retry-After", strconv.Itoa(int(time.Until(rateErr.ResetAt).Seconds())+1))
		respondError(c, http.StatusTooManyRequests, "RATE_LIMITED", rateErr.Error())

	case errors.As(err, &validationErr):
		respondError(c, http.StatusUnprocessableEntity, "INVALID_GUIDELINES", validationErr.Error())

	case errors.Is(err, openrouter.ErrUnsupportedModel):
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_MODEL", err.Error())

	case errors.Is(err, openrouter.ErrNoAPIKey):
		respondError(c, http.StatusServiceUnavailable, "AI_NOT_CONFIGURED", err.Error())

	case errors.Is(err, openrouter.ErrMalformedResponse),
		errors.Is(err, openrouter.ErrInvalidStructure),
		errors.As(err, &upstreamErr):
		respondError(c, http.StatusBadGateway, "AI_GENERATION_FAILED", err.Error())

	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// pathID parses a numeric path parameter, writing a 400 on failure
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
