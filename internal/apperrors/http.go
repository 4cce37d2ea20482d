package apperrors

import "net/http"

// StatusCode mapeia o tipo de erro para o código HTTP correspondente
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInsufficientStock, KindInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
