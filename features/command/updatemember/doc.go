// Package updatemember corrects the personal data of a registered member.
package updatemember
