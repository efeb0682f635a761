package web

import (
	"fmt"
	"net/http"
)

// HandlerType classifies an entry of the routing table. HTTP verbs map to
// regular endpoints; Before and After are path filters run around the
// endpoint; WebSocket marks an upgrade endpoint.
type HandlerType int

const (
	HandlerInvalid HandlerType = iota
	HandlerGet
	HandlerPost
	HandlerPut
	HandlerPatch
	HandlerDelete
	HandlerHead
	HandlerTrace
	HandlerConnect
	HandlerOptions
	HandlerBefore
	HandlerAfter
	HandlerWebSocket
)

var handlerTypeNames = [...]string{
	HandlerInvalid:   "INVALID",
	HandlerGet:       http.MethodGet,
	HandlerPost:      http.MethodPost,
	HandlerPut:       http.MethodPut,
	HandlerPatch:     http.MethodPatch,
	HandlerDelete:    http.MethodDelete,
	HandlerHead:      http.MethodHead,
	HandlerTrace:     http.MethodTrace,
	HandlerConnect:   http.MethodConnect,
	HandlerOptions:   http.MethodOptions,
	HandlerBefore:    "BEFORE",
	HandlerAfter:     "AFTER",
	HandlerWebSocket: "WEBSOCKET",
}

func (t HandlerType) String() string {
	if t >= 0 && int(t) < len(handlerTypeNames) {
		return handlerTypeNames[t]
	}
	return fmt.Sprintf("HandlerType(%d)", int(t))
}

// HTTPMethod returns the request method served by the handler type, or an
// empty string for filters and invalid types. WebSocket endpoints are
// reached with GET.
func (t HandlerType) HTTPMethod() string {
	switch t {
	case HandlerGet, HandlerPost, HandlerPut, HandlerPatch, HandlerDelete,
		HandlerHead, HandlerTrace, HandlerConnect, HandlerOptions:
		return handlerTypeNames[t]
	case HandlerWebSocket:
		return http.MethodGet
	}
	return ""
}
