package util

import "errors"

var (
	ErrChallengeNotFound      = errors.New("challenge not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrNoTestCases            = errors.New("no test cases found for this question")
	ErrInvalidChallengeKey    = errors.New("invalid challenge key")
	ErrChallengeEnded         = errors.New("challenge has already ended for this user")
	ErrProgressNotFound       = errors.New("challenge progress not found")
	ErrLeaderboardNotFound    = errors.New("leaderboard not found")
	ErrNoParticipants         = errors.New("no participants found for this challenge")
	ErrQuizNotFound           = errors.New("quiz not found")
	ErrQuizQuestionNotFound   = errors.New("quiz question not found")
	ErrQuizAlreadyAttempted   = errors.New("quiz already attempted")
	ErrQuizSubmissionMissing  = errors.New("no submission found for this user and quiz")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrQuestionAlreadyAdded   = errors.New("question already added to this challenge")
	ErrQuestionNotInChallenge = errors.New("question not found in this challenge")
)
