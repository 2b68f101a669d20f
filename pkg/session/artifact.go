package session

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Translations is an insertion-ordered key → text mapping. JSON output
// preserves the order keys were added, matching extraction order.
type Translations struct {
	keys   []string
	values map[string]string
}

// NewTranslations returns an empty ordered mapping.
func NewTranslations() *Translations {
	return &Translations{values: make(map[string]string)}
}

// Add records a pair. Keys are unique by construction (the session key
// counter is monotonic) so an existing key is never overwritten silently.
func (t *Translations) Add(key, text string) {
	if _, exists := t.values[key]; exists {
		return
	}
	t.keys = append(t.keys, key)
	t.values[key] = text
}

// Get returns the text for key.
func (t *Translations) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Len returns the number of pairs.
func (t *Translations) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Translations) Keys() []string {
	return append([]string(nil), t.keys...)
}

// MarshalJSON writes the mapping as a JSON object in insertion order.
func (t *Translations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kj, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vj, err := json.Marshal(t.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kj)
		buf.WriteByte(':')
		buf.Write(vj)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving key order.
func (t *Translations) UnmarshalJSON(data []byte) error {
	t.keys = nil
	t.values = make(map[string]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("translations: expected JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("translations: expected string key")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		t.Add(key, value)
	}
	_, err = dec.Token() // closing brace
	return err
}

// Metadata describes one extraction run.
type Metadata struct {
	ExtractedAt string `json:"extractedAt"`
	TotalTexts  int    `json:"totalTexts"`
	KeyPrefix   string `json:"keyPrefix"`
}

// Artifact is the serialized output of one extraction session.
type Artifact struct {
	Locale       string        `json:"locale"`
	Translations *Translations `json:"translations"`
	Metadata     Metadata      `json:"metadata"`
}
