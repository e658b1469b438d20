package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/logger"
	"github.com/tgshop/miniapp-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// WriteError maps err to its status and writes the failure body. With debug
// set, the error chain and any withheld details are included.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error, debug bool) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeMissingField,
		pkgerrors.CodeDelivery,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeRateLimit:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := types.ErrorResponse{
		Success: false,
		Error:   msg,
		Code:    string(typed.Code()),
	}

	if meta.DetailsAllowed || debug {
		if details := typed.Details(); details != nil {
			payload.Fields = details
		}
	}

	dump := pkgerrors.Dump(err)
	if debug {
		payload.Details = strings.Join(dump.Chain, "\n")
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, dump.Fields())
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.rejected")
		}
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
