// Package attribute provides attribute descriptor tables: for each resource
// type, the declared fields, whether each is persisted, whether it is numeric,
// and how its key is written on the wire.
//
// Tables are built in code:
//
//	reg := attribute.NewRegistry().
//	    Register("authors", attribute.NewTable(attribute.KeyCaseSnake).
//	        Field("firstName").
//	        Number("age").
//	        Virtual("fullName"))
//
// or loaded from YAML with LoadFile / LoadYAML.
package attribute
