package whatcms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Info is the identification result for a target.
type Info struct {
	Name       *string    `json:"name"`
	Version    *string    `json:"version"`
	Confidence Confidence `json:"confidence"`
}

// CMSName returns the reported name, or "" when none was reported.
func (i Info) CMSName() string {
	if i.Name == nil {
		return ""
	}
	return *i.Name
}

// CMSVersion returns the reported version, or "" when none was reported.
func (i Info) CMSVersion() string {
	if i.Version == nil {
		return ""
	}
	return *i.Version
}

// Confidence is a 0-100 score. The API has been seen to send it both as a
// number and as a numeric string; null and absent decode to 0.
type Confidence float64

// UnmarshalJSON implements json.Unmarshaler.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		if s == "" {
			*c = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("confidence %q is not numeric", s)
		}
		*c = Confidence(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Confidence(v)
	return nil
}
