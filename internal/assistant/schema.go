package assistant

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const answerSchemaJSON = `{
  "type": "object",
  "required": ["response", "best_summary_file", "schema_summary"],
  "properties": {
    "response": {"type": "string"},
    "best_summary_file": {"type": "string"},
    "schema_summary": {"type": "string"}
  }
}`

var answerSchema = mustSchema(answerSchemaJSON)

func mustSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(err)
	}
	return schema
}

func validateAnswer(body []byte) error {
	result, err := answerSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ProtocolError{Reason: "body is not JSON", Err: err}
	}
	if !result.Valid() {
		problems := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			problems[i] = desc.String()
		}
		return &ProtocolError{Reason: strings.Join(problems, "; ")}
	}
	return nil
}
