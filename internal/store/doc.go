// Package store defines the persistence interfaces consumed by the service
// layer: the system-of-record stores backed by PostgreSQL and the task cache
// backed by Redis. Implementations live under internal/platform.
package store
