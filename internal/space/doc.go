// Package space decodes and edits the serialized_space document embedded in a
// Genie space.
//
// Layout touched here:
//
//	data_sources.tables[].identifier
//	data_sources.tables[].column_configs[].column_name
//	data_sources.tables[].column_configs[].description   (list of strings)
//
// Everything else in the document is carried through untouched.
package space
