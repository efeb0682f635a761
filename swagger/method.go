package swagger

import (
	"github.com/vitalvas/routedoc/openapi"
	"github.com/vitalvas/routedoc/web"
)

type operationSetter func(item *openapi.PathItem, op *openapi.Operation)

// pathItemSetters maps documentable handler types to their Path Item slot.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-item-object
var pathItemSetters = map[web.HandlerType]operationSetter{
	web.HandlerGet:     func(item *openapi.PathItem, op *openapi.Operation) { item.Get = op },
	web.HandlerPost:    func(item *openapi.PathItem, op *openapi.Operation) { item.Post = op },
	web.HandlerPut:     func(item *openapi.PathItem, op *openapi.Operation) { item.Put = op },
	web.HandlerPatch:   func(item *openapi.PathItem, op *openapi.Operation) { item.Patch = op },
	web.HandlerDelete:  func(item *openapi.PathItem, op *openapi.Operation) { item.Delete = op },
	web.HandlerHead:    func(item *openapi.PathItem, op *openapi.Operation) { item.Head = op },
	web.HandlerOptions: func(item *openapi.PathItem, op *openapi.Operation) { item.Options = op },
	web.HandlerTrace:   func(item *openapi.PathItem, op *openapi.Operation) { item.Trace = op },
}

// ignoredHandlerTypes have no Path Item slot and contribute nothing to the
// document.
var ignoredHandlerTypes = map[web.HandlerType]struct{}{
	web.HandlerConnect:   {},
	web.HandlerBefore:    {},
	web.HandlerAfter:     {},
	web.HandlerInvalid:   {},
	web.HandlerWebSocket: {},
}

// operationSlot returns the setter for t. ignored is true for handler types
// that are skipped on purpose; any other type without a setter is an error.
func operationSlot(t web.HandlerType) (set operationSetter, ignored bool, err error) {
	if set, ok := pathItemSetters[t]; ok {
		return set, false, nil
	}
	if _, ok := ignoredHandlerTypes[t]; ok {
		return nil, true, nil
	}
	return nil, false, ErrUnsupportedMethod
}
