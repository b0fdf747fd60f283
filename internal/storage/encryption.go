package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength   = 32
	nonceLength = 12
	saltLength  = 16
	iterations  = 100000
)

// sealedPrefix marks values written by SealedStore.
const sealedPrefix = "sealed:v1:"

var errNotSealed = errors.New("value is not sealed")

// seal encrypts data with a key derived from password and returns a
// printable envelope: prefix + base64(salt | nonce | ciphertext).
func seal(data []byte, password string, rounds int) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	aesGCM, err := newGCM(password, salt, rounds)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	envelope := make([]byte, 0, saltLength+nonceLength+len(data)+aesGCM.Overhead())
	envelope = append(envelope, salt...)
	envelope = append(envelope, nonce...)
	envelope = aesGCM.Seal(envelope, nonce, data, nil)

	return sealedPrefix + base64.StdEncoding.EncodeToString(envelope), nil
}

func unseal(value, password string, rounds int) ([]byte, error) {
	if len(value) < len(sealedPrefix) || value[:len(sealedPrefix)] != sealedPrefix {
		return nil, errNotSealed
	}

	envelope, err := base64.StdEncoding.DecodeString(value[len(sealedPrefix):])
	if err != nil {
		return nil, err
	}
	if len(envelope) < saltLength+nonceLength {
		return nil, errors.New("sealed value too short")
	}

	salt := envelope[:saltLength]
	nonce := envelope[saltLength : saltLength+nonceLength]

	aesGCM, err := newGCM(password, salt, rounds)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, envelope[saltLength+nonceLength:], nil)
	if err != nil {
		return nil, errors.New("invalid passphrase or corrupted data")
	}

	return plaintext, nil
}

func newGCM(password string, salt []byte, rounds int) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, rounds, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}
