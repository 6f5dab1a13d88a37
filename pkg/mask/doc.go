/*
Package mask implements shell-glob-like line masks for logreader.

Mask syntax:
  - literal bytes match themselves
  - `?` matches zero or one arbitrary byte
  - `*` matches zero or more arbitrary bytes
  - `\` escapes the next byte, so `\?`, `\*` and `\\` are literals

A mask is compiled once into an immutable Sequence of rules. A run of `?`
becomes one bounded wildcard, a run of wildcards holding at least one `*`
becomes one unbounded wildcard, everything else becomes literal runs, so a
Sequence never holds two adjacent wildcard rules. The empty mask compiles to
the empty Sequence, which matches only empty input.

Matching is a backtracking search. Wildcards are resolved shortest first: a
wildcard tries to consume nothing before it consumes more. Literal rules keep
a per-match scan memo in a Scratch table so that retries resume scanning
where the previous probe stopped instead of rescanning from the start.

Basic flow:
  - compile a mask (`Compile`)
  - match records (`Sequence.Match`, or `Sequence.MatchScratch` with a reused `Scratch`)

`Matcher` wraps the two for single-goroutine callers: it keeps the active
Sequence, replaces it atomically on successful `Compile` and keeps the
previous one on failure.
*/
package mask
