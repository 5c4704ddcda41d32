package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a string slice stored as jsonb.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// SubmittedField is one stored form field, in submission order.
type SubmittedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldList keeps submitted fields in order as a jsonb array.
type FieldList []SubmittedField

// Value implements the driver.Valuer interface
func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]SubmittedField(l))
}

// Scan implements the sql.Scanner interface
func (l *FieldList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Get returns the value of the first field called name.
func (l FieldList) Get(name string) string {
	for _, f := range l {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
