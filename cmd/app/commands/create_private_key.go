package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// RunCreatePrivateKey generates a cryptographically secure 32-byte private key for
// identifier tokenization and prints it as environment variable assignments.
//
// With a KMS key URI the key is wrapped before output and the plain value never
// reaches the terminal:
//   - ID_PERMANENCE_KMS_KEY_URI="<uri>"
//   - ID_PERMANENCE_WRAPPED_KEY="<base64-encoded-kms-ciphertext>"
//
// Without a URI the key is printed in the clear as ID_PERMANENCE_KEY, which is only
// acceptable for local development. For local wrapping use a base64key:// URI.
func RunCreatePrivateKey(ctx context.Context, w io.Writer, kmsKeyURI string) error {
	rawKey := make([]byte, 32)
	if _, err := rand.Read(rawKey); err != nil {
		return fmt.Errorf("failed to generate private key: %w", err)
	}
	privateKey := hex.EncodeToString(rawKey)

	if kmsKeyURI == "" {
		fmt.Fprintln(w, "# Private Key Configuration (plain mode, local development only)")
		fmt.Fprintln(w, "# Copy this environment variable to your .env file or secrets manager")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "ID_PERMANENCE_KEY=\"%s\"\n", privateKey)
		return nil
	}

	keeper, err := secrets.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			fmt.Fprintf(w, "# Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, []byte(privateKey))
	if err != nil {
		return fmt.Errorf("failed to wrap private key: %w", err)
	}

	// Zero out the plain key from memory after wrapping
	for i := range rawKey {
		rawKey[i] = 0
	}

	fmt.Fprintln(w, "# Private Key Configuration (KMS mode)")
	fmt.Fprintln(w, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "ID_PERMANENCE_KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	fmt.Fprintf(w, "ID_PERMANENCE_WRAPPED_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))
	return nil
}
