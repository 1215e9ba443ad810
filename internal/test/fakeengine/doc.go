/*
Package fakeengine is a minimalist in-memory Docker engine for unit tests. It
implements only the container list, start, stop, restart and logs calls the
dashboard issues, and records every call so tests can assert on the exact
sequence of engine round trips.

Containers are added with Add and mutated by the engine calls: start and
restart put a container into the "running" state, stop into "exited". Unknown
ids yield errdefs not-found errors, and starting a running container yields a
not-modified error, matching the real engine.
*/
package fakeengine
