// Package titles lists the titles of the library, optionally restricted to books or dvds.
package titles
