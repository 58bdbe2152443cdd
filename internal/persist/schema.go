package persist

import (
	"github.com/invopop/jsonschema"

	"todo/internal/service"
)

// Schema returns the JSON Schema of the stored task list: an array of task
// objects.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	item := r.Reflect(&service.Task{})
	item.Version = ""
	item.Title = "Task"

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Task list",
		Description: "Stored under the key " + Key + ". Records that do not match the item schema are dropped on load.",
		Type:        "array",
		Items:       item,
	}
}
