package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	datastarHeader     = "Datastar-Request"
	datastarQueryParam = "datastar"
	eventStreamAccept  = "text/event-stream"
)

// Patch modes re-exported for views and handlers.
const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
	PatchBefore  = datastar.ElementPatchModeBefore
	PatchAfter   = datastar.ElementPatchModeAfter
)

// IsDataStar reports whether r was issued by the datastar client.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(datastarHeader) != "" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), eventStreamAccept) {
		return true
	}
	return r.URL.Query().Has(datastarQueryParam)
}
