package persist

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const todoListSchemaURL = "todolist.schema.json"

const todoListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "isCompleted"],
    "properties": {
      "id": {"type": "integer"},
      "name": {"type": "string"},
      "isCompleted": {"type": "boolean"}
    }
  }
}`

var listSchema = jsonschema.MustCompileString(todoListSchemaURL, todoListSchema)

// validateList checks a decoded JSON document against the todo list schema
// and flattens the failing leaves into one message.
func validateList(doc any) error {
	err := listSchema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var msgs []string
	collectLeaves(ve, &msgs)
	if len(msgs) == 0 {
		return err
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func collectLeaves(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}
