// Package engine invokes the primer3 engine: primer3_core for primer
// design, ntthal and oligotm for thermodynamics, plus an in-process Tm
// estimator and LRU caches in front of either.
//
// Every subprocess call is one process with its own timeout; nothing is
// shared between calls, so Designers and Thermo engines built here are
// safe for concurrent use.
package engine
