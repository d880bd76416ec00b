package service

import (
	"context"
	"encoding/base64"

	"gocloud.dev/secrets"

	idpermDomain "github.com/allisson/datashare/internal/idperm/domain"

	apperrors "github.com/allisson/datashare/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeyResolver resolves the server private key at startup. The key is either
// given directly or unwrapped through a KMS keeper, and is loaded exactly
// once: the resolved value is passed by reference into the codec and never
// reloaded.
type KeyResolver struct{}

// NewKeyResolver creates a new KeyResolver.
func NewKeyResolver() *KeyResolver {
	return &KeyResolver{}
}

// Resolve returns the private key. A non-empty plainKey wins; otherwise the
// wrapped key is base64-decoded and decrypted through the keeper at kmsKeyURI
// (gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://).
func (r *KeyResolver) Resolve(ctx context.Context, plainKey, kmsKeyURI, wrappedKeyB64 string) (string, error) {
	if plainKey != "" {
		return plainKey, nil
	}

	if kmsKeyURI == "" || wrappedKeyB64 == "" {
		return "", idpermDomain.ErrMissingPrivateKey
	}

	keeper, err := secrets.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to open KMS keeper")
	}
	defer func() {
		_ = keeper.Close()
	}()

	wrapped, err := base64.StdEncoding.DecodeString(wrappedKeyB64)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to decode wrapped private key")
	}

	plain, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to unwrap private key")
	}

	return string(plain), nil
}
