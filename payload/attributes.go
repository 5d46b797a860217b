package payload

import (
	"github.com/zero-day-ai/writepayload/attribute"
	"github.com/zero-day-ai/writepayload/record"
)

// ExtractAttributes returns the attributes of rec worth sending, keyed by
// wire key. A new record carries every persisted field it holds a value for;
// a persisted record carries only its changed fields. An empty string in a
// numeric field is sent as null so a cleared number is distinguishable from
// an absent one.
func ExtractAttributes(rec *record.Record, table *attribute.Table) map[string]any {
	attrs := make(map[string]any)
	for _, d := range table.Fields() {
		if !d.Persist {
			continue
		}
		value, ok := rec.Get(d.Name)
		if !ok {
			continue
		}
		if rec.IsPersisted() && !rec.Changed(d.Name) {
			continue
		}
		if s, isString := value.(string); d.Numeric && isString && s == "" {
			value = nil
		}
		attrs[table.WireKey(d)] = value
	}
	return attrs
}
