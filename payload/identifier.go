package payload

import (
	"github.com/zero-day-ai/writepayload/record"
)

// MethodFor selects the write verb for rec. Destruction wins over
// disassociation; both only apply to persisted records.
func MethodFor(rec *record.Record) Method {
	if !rec.IsPersisted() {
		return MethodCreate
	}
	switch {
	case rec.IsMarkedForDestruction():
		return MethodDestroy
	case rec.IsMarkedForDisassociation():
		return MethodDisassociate
	default:
		return MethodUpdate
	}
}

// IdentifierFor builds the relationship linkage entry for rec using tempID
// for unpersisted records.
func IdentifierFor(rec *record.Record, tempID string) (ResourceIdentifier, error) {
	if rec.Type == "" {
		return ResourceIdentifier{}, &ConfigError{Record: rec.String(), Err: ErrUndefinedType}
	}
	id := ResourceIdentifier{
		Type:   rec.Type,
		Method: MethodFor(rec),
	}
	if rec.IsPersisted() {
		id.ID = rec.ID
	} else {
		id.TempID = tempID
	}
	return id, nil
}

func isNewAndDestroyed(rec *record.Record) bool {
	return !rec.IsPersisted() && rec.IsMarkedForDestruction()
}
