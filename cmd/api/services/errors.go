package services

import "errors"

// 핸들러는 errors.Is 로 이 값들을 상태 코드에 매핑한다.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrGenerationFailure = errors.New("generation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
)
