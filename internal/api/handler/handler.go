package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
)

// writeError service 回傳的 *er.AnaError 依 code 回應，其餘一律視為內部錯誤
func writeError(w http.ResponseWriter, err error) {
	if anaErr, ok := err.(*er.AnaError); ok {
		api.ErrorJSON(w, int(anaErr.Code), anaErr, er.ErrStrMap[anaErr.Code])
	} else {
		api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return false
	}
	return true
}
