// Package membermessages reads the inbox of a member, the notifications the inbox notifier stored.
package membermessages
