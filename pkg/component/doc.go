// Package component models the metric and dimension entries of a collection.
//
// A Component has a fixed set of core fields (id, name, title, description,
// type, schemaPath) and an Attributes map holding every other key read from
// the source. The comparator never walks Attributes blindly: it only reads the
// names enumerated in DefaultFields and ExtendedFields. Keys outside those
// lists are carried through persistence untouched.
//
// Core string fields are pointers so that an explicit null in the source can
// be told apart from an empty string when changes are displayed.
package component
