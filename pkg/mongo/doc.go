// Package mongo bootstraps MongoDB clients from environment configuration,
// with connection retries and a health-check closure. Mongo is one of the
// supported backends for role and permission data.
package mongo
