package httputil

import (
	"errors"
	"log"
	"net/http"

	"conduit/internal/model"
)

// statusEntry pairs the transport status with the client-facing code.
type statusEntry struct {
	status int
	code   string
}

// errorTable is the single mapping from domain errors to transport
// responses, consulted once at the boundary instead of ad hoc switches in
// every handler.
var errorTable = map[error]statusEntry{
	model.ErrUserNotFound:    {http.StatusNotFound, ErrCodeNotFound},
	model.ErrProfileNotFound: {http.StatusNotFound, ErrCodeNotFound},
	model.ErrArticleNotFound: {http.StatusNotFound, ErrCodeNotFound},
	model.ErrCommentNotFound: {http.StatusNotFound, ErrCodeNotFound},

	model.ErrEmailTaken:       {http.StatusConflict, ErrCodeConflict},
	model.ErrUsernameTaken:    {http.StatusConflict, ErrCodeConflict},
	model.ErrAlreadyFollowing: {http.StatusConflict, ErrCodeConflict},

	model.ErrInvalidCredentials: {http.StatusUnauthorized, ErrCodeUnauthorized},
	model.ErrInvalidToken:       {http.StatusUnauthorized, ErrCodeUnauthorized},

	model.ErrNotArticleAuthor: {http.StatusForbidden, ErrCodeForbidden},
	model.ErrNotCommentAuthor: {http.StatusForbidden, ErrCodeForbidden},

	model.ErrUsernameRequired:    {http.StatusBadRequest, ErrCodeBadRequest},
	model.ErrEmailRequired:       {http.StatusBadRequest, ErrCodeBadRequest},
	model.ErrPasswordRequired:    {http.StatusBadRequest, ErrCodeBadRequest},
	model.ErrCannotFollowSelf:    {http.StatusBadRequest, ErrCodeBadRequest},
	model.ErrNotFollowing:        {http.StatusBadRequest, ErrCodeBadRequest},
	model.ErrTitleRequired:       {http.StatusBadRequest, ErrCodeBadRequest},
	model.ErrCommentBodyRequired: {http.StatusBadRequest, ErrCodeBadRequest},
	model.ErrFileTooLarge:        {http.StatusBadRequest, ErrCodeBadRequest},
	model.ErrUnsupportedType:     {http.StatusBadRequest, ErrCodeBadRequest},
}

// WriteDomainError maps a service error to its transport response. Anything
// outside the table is an unclassified internal failure: it gets logged here
// and surfaced opaquely.
func WriteDomainError(w http.ResponseWriter, err error) {
	for domainErr, entry := range errorTable {
		if errors.Is(err, domainErr) {
			WriteError(w, entry.status, entry.code, domainErr.Error())
			return
		}
	}

	log.Printf("[ERROR] unhandled service error: %v", err)
	WriteInternalError(w, "Something went wrong")
}
