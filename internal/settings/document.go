package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoInput is returned by Merge when called with no documents.
var ErrNoInput = errors.New("no input documents to merge")

// Document represents a Claude settings file with flexible JSON structure.
// Uses map[string]interface{} to preserve unknown fields during modification.
type Document struct {
	data map[string]interface{}
}

// Parse parses raw JSON bytes into a Document.
func Parse(data []byte) (*Document, error) {
	d := &Document{data: make(map[string]interface{})}
	if err := json.Unmarshal(data, &d.data); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadFile reads and parses a permission document from disk.
// Both read failures and malformed JSON are fatal and carry the file's identity.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return d, nil
}

// permissions returns the permissions object if present.
func (d *Document) permissions() (map[string]interface{}, bool) {
	perms, ok := d.data["permissions"].(map[string]interface{})
	return perms, ok
}

// list returns the named permission list as a slice of strings, and whether
// the key was present as a string array. Documents without a permissions
// object, without the key, or with a non-array value report false.
func (d *Document) list(key string) ([]string, bool) {
	perms, ok := d.permissions()
	if !ok {
		return nil, false
	}
	raw, ok := perms[key]
	if !ok {
		return nil, false
	}
	strs := interfaceSliceToStrings(raw)
	return strs, strs != nil
}

// AllowList returns the permissions.allow list, or nil if absent.
func (d *Document) AllowList() []string {
	list, _ := d.list("allow")
	return list
}

// DenyList returns the permissions.deny list, or nil if absent.
func (d *Document) DenyList() []string {
	list, _ := d.list("deny")
	return list
}

// interfaceSliceToStrings converts an interface{} that should be []interface{}
// containing strings to a []string. Returns nil if conversion fails.
func interfaceSliceToStrings(v interface{}) []string {
	slice, ok := v.([]interface{})
	if !ok {
		return nil
	}

	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}

// setLists replaces the allow and deny lists, creating the permissions
// object if necessary. Lists are stored as []interface{} for JSON
// compatibility with the pass-through fields.
func (d *Document) setLists(allow, deny []string) {
	perms, ok := d.permissions()
	if !ok {
		perms = make(map[string]interface{})
		d.data["permissions"] = perms
	}
	perms["allow"] = stringsToInterfaceSlice(allow)
	perms["deny"] = stringsToInterfaceSlice(deny)
}

func stringsToInterfaceSlice(strs []string) []interface{} {
	out := make([]interface{}, len(strs))
	for i, s := range strs {
		out[i] = s
	}
	return out
}

// Merge combines several permission documents into a new one. The result is
// a shallow copy of the first document with its permissions.allow and
// permissions.deny replaced by the deduplicated union of the corresponding
// lists across all inputs, in first-occurrence order. Documents that do not
// define a list contribute nothing to it. Non-permission fields come from
// the first document only.
func Merge(docs []*Document) (*Document, error) {
	if len(docs) == 0 {
		return nil, ErrNoInput
	}

	merged := &Document{data: make(map[string]interface{}, len(docs[0].data))}
	for k, v := range docs[0].data {
		merged.data[k] = v
	}

	// Replace the shared permissions map with a copy so the overlay below
	// never mutates the first input document.
	if perms, ok := merged.permissions(); ok {
		copied := make(map[string]interface{}, len(perms))
		for k, v := range perms {
			copied[k] = v
		}
		merged.data["permissions"] = copied
	}

	var allowLists, denyLists [][]string
	for _, doc := range docs {
		if allow, ok := doc.list("allow"); ok {
			allowLists = append(allowLists, allow)
		}
		if deny, ok := doc.list("deny"); ok {
			denyLists = append(denyLists, deny)
		}
	}

	merged.setLists(DedupeStrings(allowLists...), DedupeStrings(denyLists...))
	return merged, nil
}

// FromPatterns builds a fresh permission document from an already
// deduplicated allow list. The deny list is empty and no other fields are set.
func FromPatterns(allow []string) *Document {
	d := &Document{data: make(map[string]interface{})}
	d.setLists(allow, []string{})
	return d
}

// Render serializes the document as JSON, indented with the given number of
// spaces, or on a single line when compact is set. No trailing newline is
// appended; callers decide that per output destination.
func (d *Document) Render(indent int, compact bool) ([]byte, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(d.data)
	} else {
		data, err = json.MarshalIndent(d.data, "", strings.Repeat(" ", indent))
	}
	if err != nil {
		return nil, fmt.Errorf("serializing settings: %w", err)
	}
	return data, nil
}
