package services

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// Note content is stored in the OpenSSL "Salted__" envelope:
// base64("Salted__" || 8-byte salt || AES-256-CBC ciphertext), with the key
// and IV derived from the passphrase via EVP_BytesToKey over MD5. Existing
// rows were written by crypto-js with exactly this layout, so the format is
// fixed.
const (
	opensslSaltHeader = "Salted__"
	saltLength        = 8
	derivedKeyLength  = 32
	derivedIVLength   = 16
)

// EncryptedPrefix is the base64 rendering of the "Salted__" header. Every
// ciphertext this package produces starts with it.
const EncryptedPrefix = "U2FsdGVk"

var (
	ErrCiphertextMalformed = errors.New("malformed ciphertext")
	ErrDecryptionFailed    = errors.New("decryption failed")
)

// LooksEncrypted reports whether text is ciphertext-shaped, i.e. starts with
// the envelope's base64 header. This is a heuristic: plaintext that happens
// to start with the same literal will be misclassified.
func LooksEncrypted(text string) bool {
	if text == "" {
		return false
	}
	return strings.HasPrefix(text, EncryptedPrefix)
}

// Encrypt encrypts plaintext under the given passphrase. Empty input is
// returned unchanged.
func Encrypt(plaintext, key string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.New("failed to generate salt")
	}

	aesKey, iv := deriveKeyAndIV([]byte(key), salt)

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	envelope := make([]byte, 0, len(opensslSaltHeader)+saltLength+len(ciphertext))
	envelope = append(envelope, opensslSaltHeader...)
	envelope = append(envelope, salt...)
	envelope = append(envelope, ciphertext...)

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decrypt reverses Encrypt. Input that is not ciphertext-shaped is passed
// through unchanged. On any failure (wrong key, corrupt data) the input is
// returned alongside the error so callers can fall back to the stored value.
func Decrypt(ciphertext, key string) (string, error) {
	if ciphertext == "" {
		return ciphertext, nil
	}
	if !LooksEncrypted(ciphertext) {
		return ciphertext, nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return ciphertext, ErrCiphertextMalformed
	}
	if len(raw) < len(opensslSaltHeader)+saltLength || string(raw[:len(opensslSaltHeader)]) != opensslSaltHeader {
		return ciphertext, ErrCiphertextMalformed
	}

	salt := raw[len(opensslSaltHeader) : len(opensslSaltHeader)+saltLength]
	body := raw[len(opensslSaltHeader)+saltLength:]
	if len(body) == 0 || len(body)%aes.BlockSize != 0 {
		return ciphertext, ErrCiphertextMalformed
	}

	aesKey, iv := deriveKeyAndIV([]byte(key), salt)

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return ciphertext, err
	}

	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, body)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return ciphertext, ErrDecryptionFailed
	}

	// A wrong key can still unpad cleanly; empty or non-UTF-8 output is the
	// remaining tell.
	if len(unpadded) == 0 || !utf8.Valid(unpadded) {
		return ciphertext, ErrDecryptionFailed
	}

	return string(unpadded), nil
}

// deriveKeyAndIV is EVP_BytesToKey with MD5 and a single iteration, the
// derivation used by OpenSSL and crypto-js for passphrase encryption.
func deriveKeyAndIV(passphrase, salt []byte) (key, iv []byte) {
	var derived []byte
	var prev []byte
	for len(derived) < derivedKeyLength+derivedIVLength {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:derivedKeyLength], derived[derivedKeyLength : derivedKeyLength+derivedIVLength]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}
