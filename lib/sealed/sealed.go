// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"fmt"
	"io"
	"strings"

	"filippo.io/age"

	"github.com/bureau-foundation/stringref/lib/secret"
)

// Suffix is the file extension that marks a sealed file.
const Suffix = ".age"

// PrivateKeyCapacity bounds the length of an age x25519 private key
// read from disk. Encoded keys are 74 bytes.
const PrivateKeyCapacity = 128

// IsSealed reports whether path names a sealed file.
func IsSealed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), Suffix)
}

// TrimSuffix returns path without its sealed suffix, if any.
func TrimSuffix(path string) string {
	if IsSealed(path) {
		return path[:len(path)-len(Suffix)]
	}
	return path
}

// Keypair holds an age x25519 keypair. The caller must call Close when
// the keypair is no longer needed.
type Keypair struct {
	// PrivateKey is the AGE-SECRET-KEY-1... encoding, in locked
	// memory. Never log it or pass it on a command line.
	PrivateKey *secret.Buffer

	// PublicKey is the age1... encoding. Safe to publish.
	PublicKey string
}

// Close releases the private key memory. Safe to call more than once.
func (k *Keypair) Close() error {
	if k.PrivateKey != nil {
		return k.PrivateKey.Close()
	}
	return nil
}

// GenerateKeypair generates a new age x25519 keypair.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age keypair: %w", err)
	}

	// identity.String is a heap string; the locked buffer is the durable
	// copy and the byte slice is zeroed by NewFromBytes.
	privateKey, err := secret.NewFromBytes([]byte(identity.String()))
	if err != nil {
		return nil, fmt.Errorf("protecting private key: %w", err)
	}

	return &Keypair{
		PrivateKey: privateKey,
		PublicKey:  identity.Recipient().String(),
	}, nil
}

// ParseRecipients parses age public keys (age1... format). At least one
// key is required.
func ParseRecipients(keys []string) ([]age.Recipient, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	recipients := make([]age.Recipient, 0, len(keys))
	for _, key := range keys {
		recipient, err := age.ParseX25519Recipient(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}
	return recipients, nil
}

// NewWriter returns a writer that encrypts everything written to it for
// the given recipients and writes the ciphertext to destination. Close
// must be called to flush the final chunk; it does not close
// destination.
func NewWriter(destination io.Writer, recipientKeys []string) (io.WriteCloser, error) {
	recipients, err := ParseRecipients(recipientKeys)
	if err != nil {
		return nil, err
	}

	writer, err := age.Encrypt(destination, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	return writer, nil
}

// NewReader returns a reader that decrypts source with privateKey. The
// key is borrowed and not closed.
func NewReader(source io.Reader, privateKey *secret.Buffer) (io.Reader, error) {
	// age parses identities from strings. The heap copy is brief.
	identity, err := age.ParseX25519Identity(privateKey.String())
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	reader, err := age.Decrypt(source, identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	return reader, nil
}

// ReadPrivateKey reads an age private key from path, or from stdin when
// path is "-", into locked memory and validates it.
func ReadPrivateKey(path string) (*secret.Buffer, error) {
	privateKey, err := secret.ReadFromPath(path, PrivateKeyCapacity)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	if err := ParsePrivateKey(privateKey); err != nil {
		privateKey.Close()
		return nil, err
	}
	return privateKey, nil
}

// ParsePublicKey validates an age public key.
func ParsePublicKey(publicKey string) error {
	if _, err := age.ParseX25519Recipient(publicKey); err != nil {
		return fmt.Errorf("invalid age public key: %w", err)
	}
	return nil
}

// ParsePrivateKey validates an age private key held in a secret buffer.
func ParsePrivateKey(privateKey *secret.Buffer) error {
	if _, err := age.ParseX25519Identity(privateKey.String()); err != nil {
		return fmt.Errorf("invalid age private key: %w", err)
	}
	return nil
}
