// Package schema models the JSON documents of the Rooster Teeth VOD API.
//
// Decoding is strict by default: every field is required unless its type is
// Optional. The upstream API changes shape without a version marker, so a
// previously required field going missing fails with a *DecodeError naming
// the field path instead of turning into a zero value.
//
// # Field names
//
// Struct tags are the rename table. Upstream keys that read badly as Go
// identifiers are mapped once, in the tag:
//
//	type   -> Kind
//	self   -> Reference
//	_index -> Index
//	_score -> Score
//
// # Optional fields
//
// Fields only present in some real responses are declared as Optional[T].
// OptionalFields lists them per root type:
//
//	schema.OptionalFields(schema.Page[schema.Video]{})
//
// Timestamps keep the UTC offset the API sent them with.
package schema
