// Package postgres stores the order log in PostgreSQL through lib/pq.
package postgres
