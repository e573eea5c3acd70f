package lint

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Object kinds a rule can target.
const (
	ObjectAny            = "*"
	ObjectOpenAPI        = "openapi"
	ObjectInfo           = "info"
	ObjectContact        = "contact"
	ObjectLicense        = "license"
	ObjectServer         = "server"
	ObjectTag            = "tag"
	ObjectExternalDocs   = "externalDocs"
	ObjectPaths          = "paths"
	ObjectPathItem       = "pathItem"
	ObjectOperation      = "operation"
	ObjectParameter      = "parameter"
	ObjectRequestBody    = "requestBody"
	ObjectResponse       = "response"
	ObjectHeader         = "header"
	ObjectMediaType      = "mediaType"
	ObjectSchema         = "schema"
	ObjectSchemaProperty = "schemaProperty"
	ObjectComponents     = "components"
	ObjectReference      = "reference"
	ObjectSecurityScheme = "securityScheme"
)

var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// node is one object of the document together with its location.
type node struct {
	object  string
	pointer string
	value   map[string]any
}

// walker collects the typed objects of an OpenAPI document in document
// order (map keys sorted).
type walker struct {
	nodes []node
}

func collectNodes(doc map[string]any) []node {
	w := &walker{}
	w.visit(ObjectOpenAPI, "", doc)

	return w.nodes
}

func (w *walker) visit(object, pointer string, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		return
	}

	if _, isRef := obj["$ref"]; isRef {
		w.nodes = append(w.nodes, node{object: ObjectReference, pointer: pointer, value: obj})
		return
	}

	w.nodes = append(w.nodes, node{object: object, pointer: pointer, value: obj})

	switch object {
	case ObjectOpenAPI:
		w.visit(ObjectInfo, join(pointer, "info"), obj["info"])
		w.visitList(ObjectServer, join(pointer, "servers"), obj["servers"])
		w.visit(ObjectPaths, join(pointer, "paths"), obj["paths"])
		w.visit(ObjectComponents, join(pointer, "components"), obj["components"])
		w.visitList(ObjectTag, join(pointer, "tags"), obj["tags"])
		w.visit(ObjectExternalDocs, join(pointer, "externalDocs"), obj["externalDocs"])
	case ObjectInfo:
		w.visit(ObjectContact, join(pointer, "contact"), obj["contact"])
		w.visit(ObjectLicense, join(pointer, "license"), obj["license"])
	case ObjectTag:
		w.visit(ObjectExternalDocs, join(pointer, "externalDocs"), obj["externalDocs"])
	case ObjectPaths:
		for _, key := range sortedKeys(obj) {
			if strings.HasPrefix(key, "x-") {
				continue
			}

			w.visit(ObjectPathItem, join(pointer, key), obj[key])
		}
	case ObjectPathItem:
		for _, method := range httpMethods {
			w.visit(ObjectOperation, join(pointer, method), obj[method])
		}

		w.visitList(ObjectParameter, join(pointer, "parameters"), obj["parameters"])
		w.visitList(ObjectServer, join(pointer, "servers"), obj["servers"])
	case ObjectOperation:
		w.visitList(ObjectParameter, join(pointer, "parameters"), obj["parameters"])
		w.visit(ObjectRequestBody, join(pointer, "requestBody"), obj["requestBody"])
		w.visitChildren(ObjectResponse, join(pointer, "responses"), obj["responses"])
		w.visitList(ObjectServer, join(pointer, "servers"), obj["servers"])
		w.visit(ObjectExternalDocs, join(pointer, "externalDocs"), obj["externalDocs"])

		if callbacks, ok := obj["callbacks"].(map[string]any); ok {
			for _, name := range sortedKeys(callbacks) {
				w.visitChildren(ObjectPathItem, join(pointer, "callbacks", name), callbacks[name])
			}
		}
	case ObjectParameter, ObjectHeader:
		w.visit(ObjectSchema, join(pointer, "schema"), obj["schema"])
		w.visitChildren(ObjectMediaType, join(pointer, "content"), obj["content"])
	case ObjectRequestBody:
		w.visitChildren(ObjectMediaType, join(pointer, "content"), obj["content"])
	case ObjectResponse:
		w.visitChildren(ObjectHeader, join(pointer, "headers"), obj["headers"])
		w.visitChildren(ObjectMediaType, join(pointer, "content"), obj["content"])
	case ObjectMediaType:
		w.visit(ObjectSchema, join(pointer, "schema"), obj["schema"])
	case ObjectComponents:
		w.visitChildren(ObjectSchema, join(pointer, "schemas"), obj["schemas"])
		w.visitChildren(ObjectResponse, join(pointer, "responses"), obj["responses"])
		w.visitChildren(ObjectParameter, join(pointer, "parameters"), obj["parameters"])
		w.visitChildren(ObjectRequestBody, join(pointer, "requestBodies"), obj["requestBodies"])
		w.visitChildren(ObjectHeader, join(pointer, "headers"), obj["headers"])
		w.visitChildren(ObjectSecurityScheme, join(pointer, "securitySchemes"), obj["securitySchemes"])
	case ObjectSchema, ObjectSchemaProperty:
		w.visitSchema(pointer, obj)
	}
}

func (w *walker) visitSchema(pointer string, obj map[string]any) {
	w.visitChildren(ObjectSchemaProperty, join(pointer, "properties"), obj["properties"])
	w.visit(ObjectSchema, join(pointer, "items"), obj["items"])
	w.visit(ObjectSchema, join(pointer, "additionalProperties"), obj["additionalProperties"])
	w.visit(ObjectSchema, join(pointer, "not"), obj["not"])

	for _, combinator := range []string{"allOf", "anyOf", "oneOf"} {
		w.visitList(ObjectSchema, join(pointer, combinator), obj[combinator])
	}

	w.visit(ObjectExternalDocs, join(pointer, "externalDocs"), obj["externalDocs"])
}

// visitChildren visits every value of a map-valued property.
func (w *walker) visitChildren(object, pointer string, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		return
	}

	w.visitMap(object, pointer, obj)
}

func (w *walker) visitMap(object, pointer string, obj map[string]any) {
	for _, key := range sortedKeys(obj) {
		w.visit(object, join(pointer, key), obj[key])
	}
}

func (w *walker) visitList(object, pointer string, value any) {
	items, ok := value.([]any)
	if !ok {
		return
	}

	for i, item := range items {
		w.visit(object, join(pointer, strconv.Itoa(i)), item)
	}
}

func join(pointer string, tokens ...string) string {
	for _, token := range tokens {
		pointer += "/" + jsonpointer.Escape(token)
	}

	return pointer
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
