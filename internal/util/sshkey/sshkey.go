package sshkey

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ErrEmptyKey is returned by Parse for blank key material.
var ErrEmptyKey = errors.New("ssh private key is empty")

// Key describes a parsed private key without exposing it.
type Key struct {
	// Type is the public key algorithm, e.g. "ssh-ed25519".
	Type string
	// Fingerprint is the SHA256 fingerprint of the public key.
	Fingerprint string
	// AuthorizedKey is the public key in authorized_keys format.
	AuthorizedKey string
}

// Parse validates PEM/OpenSSH private key material. Passphrase-protected keys
// are rejected because the backend cannot use them unattended.
func Parse(material string) (*Key, error) {
	if strings.TrimSpace(material) == "" {
		return nil, ErrEmptyKey
	}

	signer, err := ssh.ParsePrivateKey([]byte(material))
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("ssh private key is passphrase protected")
		}
		return nil, fmt.Errorf("invalid ssh private key: %w", err)
	}

	pub := signer.PublicKey()
	return &Key{
		Type:          pub.Type(),
		Fingerprint:   ssh.FingerprintSHA256(pub),
		AuthorizedKey: strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pub))),
	}, nil
}
