// Package members lists all registered members.
package members
