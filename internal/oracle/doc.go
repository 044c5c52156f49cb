// Package oracle defines the query contract the pairing engine uses to
// consult an external bracket-balance and span index.
//
// The engine never builds or updates the index itself; it only asks
// whether an unmatched delimiter exists around the cursor and what kind
// of syntactic span encloses a position. Any index implementation that
// answers these four questions synchronously against the current buffer
// state can back the engine. The span package provides one.
package oracle
