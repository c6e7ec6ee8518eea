// Package schema defines the structured product record and the page payload
// types the pipeline produces, together with parsing and field-level
// validation of raw product input.
package schema
