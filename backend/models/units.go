package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// UnitNumber is the display and lookup key of a unit. It is stored as an integer;
// older records may still hold it as a decimal string, which decoding accepts.
type UnitNumber int

// ParseUnitNumber reads a decimal unit number. Surrounding spaces are ignored.
func ParseUnitNumber(s string) (UnitNumber, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid unit number %q", s)
	}
	return UnitNumber(n), nil
}

func (n UnitNumber) String() string {
	return strconv.Itoa(int(n))
}

// UnmarshalBSONValue accepts any numeric BSON type and numeric strings.
// Non-numeric strings decode to 0 so a single bad record never breaks a listing.
func (n *UnitNumber) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		*n = UnitNumber(raw.Int32())
	case bsontype.Int64:
		*n = UnitNumber(raw.Int64())
	case bsontype.Double:
		*n = UnitNumber(int(raw.Double()))
	case bsontype.String:
		parsed, err := ParseUnitNumber(raw.StringValue())
		if err != nil {
			parsed = 0
		}
		*n = parsed
	case bsontype.Null, bsontype.Undefined:
		*n = 0
	default:
		return fmt.Errorf("unit_number: unsupported bson type %s", t)
	}
	return nil
}

// UnmarshalJSON accepts both 7 and "7".
func (n *UnitNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseUnitNumber(s)
		if err != nil {
			return err
		}
		*n = parsed
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("invalid unit number %s", b)
	}
	*n = UnitNumber(v)
	return nil
}

type Unit struct {
	Base        `bson:",inline"`
	UnitNumber  UnitNumber `json:"unit_number" bson:"unit_number" gorm:"index"`
	UnitTitle   string     `json:"unit_title" bson:"unit_title"`
	Description string     `json:"description" bson:"description"`
}

func (Unit) TableName() string { return UnitsCollection }

type Topic struct {
	Base        `bson:",inline"`
	UnitID      string `json:"unit_id" bson:"unit_id" gorm:"index;size:64"`
	TopicTitle  string `json:"topic_title" bson:"topic_title"`
	TopicOrder  int    `json:"topic_order" bson:"topic_order"`
	Description string `json:"description" bson:"description"`
}

func (Topic) TableName() string { return TopicsCollection }
