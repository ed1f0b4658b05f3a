package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// optionalInt accepts a JSON number, a numeric string, null or "". Zero is
// treated as absent.
type optionalInt struct {
	Value *int
}

func (o *optionalInt) UnmarshalJSON(b []byte) error {
	o.Value = nil
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("maxResponses: %q is not an integer", raw)
	}
	if n != 0 {
		o.Value = &n
	}
	return nil
}
