package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hookbase/hookbase-go/pkg/jsonvalue"
)

type errorBody struct {
	message     string
	details     map[string]string
	fieldErrors map[string][]string
}

// parseErrorBody extracts what it can from an error response. The message
// comes from "message", then "error", then "HTTP {status}: {reason}". Bodies
// that are not JSON objects are ignored.
func parseErrorBody(status int, body []byte) errorBody {
	var out errorBody

	var fields map[string]jsonvalue.Value
	if len(body) > 0 && json.Unmarshal(body, &fields) == nil && fields != nil {
		out.message = stringField(fields, "message")
		if out.message == "" {
			out.message = stringField(fields, "error")
		}

		out.details = make(map[string]string, len(fields))
		for k, v := range fields {
			out.details[k] = v.Text()
		}

		if raw, ok := fields["errors"]; ok && raw.Kind() == jsonvalue.KindObject {
			var fe map[string][]string
			if data, err := raw.MarshalJSON(); err == nil && json.Unmarshal(data, &fe) == nil {
				out.fieldErrors = fe
			}
		}
	}

	if out.message == "" {
		reason := http.StatusText(status)
		if reason == "" {
			reason = "Unknown Status"
		}
		out.message = fmt.Sprintf("HTTP %d: %s", status, reason)
	}
	return out
}

func stringField(fields map[string]jsonvalue.Value, key string) string {
	s, _ := fields[key].Str()
	return s
}
