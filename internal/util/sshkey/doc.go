// Package sshkey validates SSH key material for node imports.
//
// Inline private keys in node specifications are parsed with [Parse] before
// they are sent to the backend, so malformed or passphrase-protected keys
// surface as per-node issues instead of failed imports.
package sshkey
