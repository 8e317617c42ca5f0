// Package courier contains the read model of a delivery agent. The courier
// directory is an external collaborator; this package defines the shape the
// dispatch core consumes when selecting assignment candidates.
package courier
