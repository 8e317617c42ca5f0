// Package order contains the Order aggregate and its lifecycle state machine.
// Orders are owned by an external ordering workflow; the dispatch core reads
// them and mutates them only when binding a courier. Status transitions are
// enforced by the Status type so an order can never reach an inconsistent
// state (for example a delivered order without a courier reference).
package order
