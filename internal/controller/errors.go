package controller

import (
	"errors"
	"net/http"

	"code_arena_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层的哨兵错误映射到统一的响应码
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrChallengeNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrProgressNotFound),
		errors.Is(err, util.ErrLeaderboardNotFound),
		errors.Is(err, util.ErrNoParticipants),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuizQuestionNotFound),
		errors.Is(err, util.ErrQuizSubmissionMissing),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrInvalidChallengeKey),
		errors.Is(err, util.ErrNoTestCases):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrQuizAlreadyAttempted),
		errors.Is(err, util.ErrQuestionAlreadyAdded):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrChallengeEnded):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrQuestionNotInChallenge):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
