// Package scan finds version control working copies beneath a set of roots and
// prints every one that holds uncommitted, unpushed, or stashed work.
//
// CommandBuilder wires the Cobra command, CommandConfiguration carries the
// persisted settings, and Service drives a single scan: discovery across roots,
// then strictly sequential status interrogation of each working copy, with Git
// submodules visited right after their parent.
package scan
