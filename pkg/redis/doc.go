// Package redis bootstraps go-redis clients from environment configuration,
// with startup retries and a health-check closure. Redis backs the shared
// permission cache tier and the cross-instance auth event channel.
package redis
