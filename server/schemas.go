package server

import (
	"encoding/json"

	"github.com/bytearena/pendulum/game/course"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const numberOrString = `{"type": ["number", "string"]}`

const spawnSchema = `{
	"type": "object",
	"properties": {
		"p": {"type": "array", "items": ` + numberOrString + `, "minItems": 2, "maxItems": 2},
		"params": {"type": "object"}
	}
}`

const controlSchema = `{
	"type": "object",
	"required": ["id", "u"],
	"properties": {
		"id": {"type": "string"},
		"u": {"type": "array", "items": ` + numberOrString + `, "minItems": 3, "maxItems": 3},
		"doControl": {"type": "boolean"},
		"info": {"type": ["string", "null"]}
	}
}`

const cameraSchema = `{
	"type": "object",
	"properties": {
		"mode": {"type": "string"},
		"p": {"type": "array", "items": ` + numberOrString + `, "minItems": 2, "maxItems": 2}
	},
	"anyOf": [
		{"required": ["mode"], "properties": {"mode": {"const": "auto"}}},
		{"required": ["p"]}
	]
}`

type requestSchemas struct {
	spawn   *jsonschema.Schema
	control *jsonschema.Schema
	camera  *jsonschema.Schema
}

func compileRequestSchemas() *requestSchemas {
	return &requestSchemas{
		spawn:   jsonschema.MustCompileString("spawn.json", spawnSchema),
		control: jsonschema.MustCompileString("control.json", controlSchema),
		camera:  jsonschema.MustCompileString("camera.json", cameraSchema),
	}
}

// decodeRequest validates body against schema, then decodes it into dst.
// An empty body stands for an empty object.
func decodeRequest(schema *jsonschema.Schema, body []byte, dst interface{}) error {
	if len(body) == 0 {
		body = []byte("{}")
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return errors.Wrapf(course.ErrInvalidParameter, "request body is not valid JSON: %s", err.Error())
	}

	if err := schema.Validate(doc); err != nil {
		return errors.Wrapf(course.ErrInvalidParameter, "request body does not match schema: %s", err.Error())
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errors.Wrapf(course.ErrInvalidParameter, "could not decode request body: %s", err.Error())
	}

	return nil
}
