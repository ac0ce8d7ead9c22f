package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Custom JSONB type for loosely-structured objects (notification data payloads)
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("unsupported type for JSONB scan")
	}
}

// JSONArray holds ordered free-form rows (quote line items, order items). The
// element schema is owned by the frontend and not enforced here.
type JSONArray []map[string]interface{}

func (a JSONArray) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(JSONArray{})
	}
	return json.Marshal(a)
}

func (a *JSONArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("unsupported type for JSONArray scan")
	}
}
