// Package account registers and authenticates users with bcrypt password
// hashes stored in Postgres. Last-login updates and the after-register hook
// run in the background on detached contexts.
package account
