package service

import (
	"bytes"
	"compress/flate"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	idpermDomain "github.com/allisson/datashare/internal/idperm/domain"
)

// derivedKeySize is the number of bytes kept from the SHA-256 digest when
// deriving a per-product AES key. 16 bytes selects AES-128. Fixed: changing it
// invalidates every token already issued to data recipients.
const derivedKeySize = 16

// zeroIV is the fixed all-zero initialization vector used for every
// encryption. Identical plaintext under an identical key therefore always
// yields an identical token, which is what makes tokens stable across calls
// from the same (software product, customer) pair. The key already varies per
// scope, but this remains a documented weakness rather than a silent one: see
// the token versioning note in DESIGN.md before changing it.
var zeroIV = make([]byte, aes.BlockSize)

// AESPermanenceCodec implements IdentifierCodec with AES-128 in CFB mode under
// a key derived from the software product id and the server-wide private key.
// The plaintext is deflate-compressed before encryption to shorten tokens
// (not a security measure), and the ciphertext is carried as base64 with the
// one path-unsafe character escaped.
//
// The codec is stateless apart from the immutable private key and is safe for
// concurrent use.
type AESPermanenceCodec struct {
	privateKey string
}

// NewAESPermanenceCodec creates a codec around the server-wide private key.
// The key is loaded once at process start and passed in by reference; the
// codec never reloads or caches derived material across requests.
func NewAESPermanenceCodec(privateKey string) (*AESPermanenceCodec, error) {
	if privateKey == "" {
		return nil, idpermDomain.ErrMissingPrivateKey
	}
	return &AESPermanenceCodec{privateKey: privateKey}, nil
}

// EncodeID encrypts customerKey∥internalID under the scope-derived key.
// The customer-key prefix binds the token to the customer so that decoding
// under any other customer recovers garbage rather than a usable id.
func (c *AESPermanenceCodec) EncodeID(
	internalID string,
	scope idpermDomain.CallerScope,
) (string, error) {
	if err := scope.Validate(); err != nil {
		return "", err
	}
	return c.encrypt(scope.CustomerKey+internalID, scope.SoftwareProductID)
}

// DecodeID decrypts a token and strips the known-length customer-key prefix to
// recover the internal id. The prefix is stripped by length, not compared:
// a cross-scope decode must look like any other unresolvable id, not like a
// distinguishable error.
func (c *AESPermanenceCodec) DecodeID(
	token string,
	scope idpermDomain.CallerScope,
) (string, error) {
	if err := scope.Validate(); err != nil {
		return "", err
	}

	plaintext, err := c.decrypt(token, scope.SoftwareProductID)
	if err != nil {
		return "", err
	}
	if len(plaintext) <= len(scope.CustomerKey) {
		return "", idpermDomain.NewFormatError("identifier shorter than customer key", nil)
	}
	return plaintext[len(scope.CustomerKey):], nil
}

// EncodeSubject encrypts a raw customer id with no prefix. Subject tokens are
// the durable external identity of a principal for one software product.
func (c *AESPermanenceCodec) EncodeSubject(
	customerID string,
	scope idpermDomain.CallerScope,
) (string, error) {
	if err := scope.Validate(); err != nil {
		return "", err
	}
	return c.encrypt(customerID, scope.SoftwareProductID)
}

// DecodeSubject decrypts a subject token back to the customer id.
func (c *AESPermanenceCodec) DecodeSubject(
	token string,
	scope idpermDomain.CallerScope,
) (string, error) {
	if err := scope.Validate(); err != nil {
		return "", err
	}
	return c.decrypt(token, scope.SoftwareProductID)
}

// deriveKey hashes the software product id concatenated with the private key
// and keeps the first derivedKeySize bytes as the AES key. The truncation
// length is preserved for token compatibility and is not assumed to
// generalize to other ciphers.
func (c *AESPermanenceCodec) deriveKey(softwareProductID string) []byte {
	digest := sha256.Sum256([]byte(softwareProductID + c.privateKey))
	return digest[:derivedKeySize]
}

func (c *AESPermanenceCodec) encrypt(plaintext, softwareProductID string) (string, error) {
	block, err := aes.NewCipher(c.deriveKey(softwareProductID))
	if err != nil {
		return "", err
	}

	compressed, err := deflate([]byte(plaintext))
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, len(compressed))
	cipher.NewCFBEncrypter(block, zeroIV).XORKeyStream(ciphertext, compressed)

	return escapeBase64(ciphertext), nil
}

func (c *AESPermanenceCodec) decrypt(token, softwareProductID string) (string, error) {
	ciphertext, err := unescapeBase64(token)
	if err != nil {
		return "", idpermDomain.NewFormatError("transport decode failed", err)
	}

	block, err := aes.NewCipher(c.deriveKey(softwareProductID))
	if err != nil {
		return "", err
	}

	compressed := make([]byte, len(ciphertext))
	cipher.NewCFBDecrypter(block, zeroIV).XORKeyStream(compressed, ciphertext)

	plaintext, err := inflate(compressed)
	if err != nil {
		return "", idpermDomain.NewFormatError("payload decompression failed", err)
	}

	return string(plaintext), nil
}

// deflate compresses identifier-sized payloads before encryption. This only
// shortens tokens; it adds no secrecy.
func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(data []byte) ([]byte, error) {
	reader := flate.NewReader(bytes.NewReader(data))
	defer reader.Close()
	return io.ReadAll(reader)
}

// escapeBase64 encodes ciphertext as standard base64 and replaces '/', the one
// character unsafe inside URL path and query segments, with '_'.
func escapeBase64(data []byte) string {
	return strings.ReplaceAll(base64.StdEncoding.EncodeToString(data), "/", "_")
}

func unescapeBase64(token string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.ReplaceAll(token, "_", "/"))
}
