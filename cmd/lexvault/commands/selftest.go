package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lexvault/internal/domain"
	"lexvault/internal/protocol/hybrid"
	"lexvault/internal/services/identity"
)

func selftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the encryption scheme in-process and report the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfTest(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

type selfCheck struct {
	name string
	run  func(ctx context.Context, k, stranger *identity.Keys) error
}

var selfChecks = []selfCheck{
	{"round trip", checkRoundTrip},
	{"wrong recipient is rejected", checkWrongRecipient},
	{"tampered bundle is rejected", checkTamper},
	{"signature verifies without the recipient key", checkVerifyOnly},
}

// runSelfTest generates two fresh sessions and runs every check against them.
func runSelfTest(ctx context.Context, w io.Writer) error {
	k, err := identity.NewKeyStore().Initialize(ctx)
	if err != nil {
		return err
	}
	stranger, err := identity.NewKeyStore().Initialize(ctx)
	if err != nil {
		return err
	}
	fp := k.Fingerprints()
	fmt.Fprintf(w, "signing %s, exchange %s\n", fp.Signing, fp.Exchange)

	failed := 0
	for _, c := range selfChecks {
		if err := c.run(ctx, k, stranger); err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", failMark, c.name, err)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", okMark, c.name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(selfChecks))
	}
	return nil
}

var helloWorld = []byte("Hello, World!")

func seal(ctx context.Context, k *identity.Keys) (domain.EncryptedBundle, error) {
	return hybrid.NewSealer(k.Owner()).EncryptAndSign(ctx, helloWorld, k.RecipientPublic())
}

func checkRoundTrip(ctx context.Context, k, _ *identity.Keys) error {
	b, err := seal(ctx, k)
	if err != nil {
		return err
	}
	got, err := hybrid.NewOpener(k.Recipient()).VerifyAndDecrypt(ctx, b, k.OwnerPublic())
	if err != nil {
		return err
	}
	if !bytes.Equal(got, helloWorld) {
		return errors.New("plaintext mismatch")
	}
	return nil
}

func checkWrongRecipient(ctx context.Context, k, stranger *identity.Keys) error {
	b, err := seal(ctx, k)
	if err != nil {
		return err
	}
	_, err = hybrid.NewOpener(stranger.Recipient()).VerifyAndDecrypt(ctx, b, k.OwnerPublic())
	if !errors.Is(err, domain.ErrDecryptionFailed) {
		return fmt.Errorf("got %v, want decryption failure", err)
	}
	return nil
}

func checkTamper(ctx context.Context, k, _ *identity.Keys) error {
	b, err := seal(ctx, k)
	if err != nil {
		return err
	}
	b.IV[0] ^= 0x01
	_, err = hybrid.NewOpener(k.Recipient()).VerifyAndDecrypt(ctx, b, k.OwnerPublic())
	if !errors.Is(err, domain.ErrSignatureInvalid) {
		return fmt.Errorf("got %v, want signature failure", err)
	}
	return nil
}

func checkVerifyOnly(ctx context.Context, k, _ *identity.Keys) error {
	b, err := seal(ctx, k)
	if err != nil {
		return err
	}
	return hybrid.Verify(b, k.OwnerPublic())
}
