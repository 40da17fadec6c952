package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ItemID identifies a purchasable item. Catalog courses use integer ids,
// AI packages and bookings use string ids; both travel through the same field.
type ItemID string

func IntID(id int64) ItemID {
	return ItemID(strconv.FormatInt(id, 10))
}

func (id ItemID) String() string {
	return string(id)
}

// Int returns the numeric value for catalog ids. Only the canonical decimal
// form counts, so "007" stays a string id.
func (id ItemID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != string(id) {
		return 0, false
	}
	return n, true
}

func (id ItemID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id must be a string or an integer: %w", err)
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("item id must be an integer: %w", err)
	}
	*id = IntID(i)
	return nil
}
