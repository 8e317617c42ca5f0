// Package services contains stateless domain services that implement business
// logic spanning multiple aggregates, such as filtering courier candidates
// during an assignment run.
package services
