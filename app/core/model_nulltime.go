package core

import (
	"database/sql/driver"
	"encoding/json"
	"reflect"
	"strconv"
	"time"
)

type NullTime struct {
	Time  time.Time
	Valid bool // Valid is true if Time is not NULL
}

func Now() NullTime {
	return NullTime{Time: time.Now(), Valid: true}
}

var nullTimeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"1/2/2006 15:04:05",
	"02/01/2006",
	"1/2/2006",
	"02/01/06",
}

func (u *NullTime) FromString(s string) {
	for _, format := range nullTimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			u.Time = t
			u.Valid = true
			return
		}
	}
	if i, err := strconv.Atoi(s); err == nil {
		u.Time = time.Unix(int64(i), 0)
		u.Valid = true
		return
	}
	u.Valid = false
}

func (u *NullTime) UnmarshalJSON(data []byte) error {

	s := string(data)
	if s == "null" || s == `""` {
		u.Valid = false
		return nil
	}

	// Get rid of the quotes "" around the value.
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	u.FromString(s)
	return nil
}

func (u NullTime) MarshalJSON() ([]byte, error) {

	if u.Valid {
		if u.Time.IsZero() {
			return json.Marshal("")
		}
		return json.Marshal(u.Time)
	}
	return json.Marshal("")
}

// Scan implements the Scanner interface.
func (nt *NullTime) Scan(value interface{}) error {
	nt.Time, nt.Valid = value.(time.Time)
	if !nt.Valid && value != nil {
		if reflect.TypeOf(value).String() == "[]uint8" {
			nt.FromString(string(value.([]uint8)))
		} else if reflect.TypeOf(value).String() == "string" {
			nt.FromString(value.(string))
		}
	}

	return nil
}

// Value implements the driver Valuer interface.
func (nt NullTime) Value() (driver.Value, error) {
	if !nt.Valid {
		return nil, nil
	}
	return nt.Time, nil
}
