package commands

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/pcacs/rsalab-go/pkg/rsalab/engine"
	"github.com/pcacs/rsalab-go/pkg/rsalab/keygen"
)

// keyFlags are the key material flags shared by keygen, encrypt and decrypt.
type keyFlags struct {
	p, q, e string
}

func (k *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&k.p, "p", "", "first prime (decimal)")
	cmd.Flags().StringVar(&k.q, "q", "", "second prime (decimal)")
	cmd.Flags().StringVar(&k.e, "e", "", "public exponent (decimal); searched at random when empty")
}

func (k *keyFlags) hasPrimes() bool { return k.p != "" || k.q != "" }

// build derives a key pair from the flags, falling back to bits when no
// primes were given.
func (k *keyFlags) build(cmd *cobra.Command, s *session, bits int) (*keygen.KeyPair, error) {
	ctx := cmd.Context()
	if !k.hasPrimes() {
		if k.e != "" {
			return nil, errors.New("--e requires --p and --q")
		}
		if bits == 0 {
			return nil, errors.New("--p and --q are required")
		}
		return s.generator.FromBits(ctx, bits)
	}

	p, q, err := parsePair(k.p, k.q)
	if err != nil {
		return nil, err
	}
	if k.e == "" {
		return s.generator.FromPrimes(ctx, p, q)
	}
	e, err := keygen.ParseInt(k.e)
	if err != nil {
		return nil, err
	}
	return s.generator.FromPrimesAndExponent(ctx, p, q, e)
}

func parsePair(ps, qs string) (*big.Int, *big.Int, error) {
	if ps == "" || qs == "" {
		return nil, nil, errors.New("--p and --q must be given together")
	}
	p, err := keygen.ParseInt(ps)
	if err != nil {
		return nil, nil, err
	}
	q, err := keygen.ParseInt(qs)
	if err != nil {
		return nil, nil, err
	}
	return p, q, nil
}

func newKeygenCommand(opts *rootOptions) *cobra.Command {
	var (
		keys keyFlags
		bits int
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair and print every component",
		Long: `Generate a key pair. With --p and --q the primes are checked and used as given,
otherwise two primes of bits/2 bits are drawn. The public exponent is searched
at random unless --e is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			kp, err := keys.build(cmd, s, bits)
			if err != nil {
				return err
			}
			en, err := engine.New(kp, s.backend)
			if err != nil {
				return err
			}
			s.logger.Info(cmd.Context(), "key pair generated", "backend", s.backend.ID().String(), "bits", kp.BitLen())
			return en.WriteStatus(cmd.OutOrStdout())
		},
	}
	keys.register(cmd)
	cmd.Flags().IntVar(&bits, "bits", 1024, "modulus size when no primes are given")
	return cmd
}

func newEncryptCommand(opts *rootOptions) *cobra.Command {
	var (
		keys    keyFlags
		message string
	)
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a decimal integer with the key built from --p, --q and --e",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			en, err := engineFromFlags(cmd, opts, &keys)
			if err != nil {
				return err
			}
			c, err := en.EncryptString(message)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c)
			return err
		},
	}
	keys.register(cmd)
	cmd.Flags().StringVar(&message, "message", "", "plaintext integer (decimal)")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newDecryptCommand(opts *rootOptions) *cobra.Command {
	var (
		keys       keyFlags
		ciphertext string
	)
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a decimal integer with the key built from --p, --q and --e",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			en, err := engineFromFlags(cmd, opts, &keys)
			if err != nil {
				return err
			}
			m, err := en.DecryptString(ciphertext)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), m)
			return err
		},
	}
	keys.register(cmd)
	cmd.Flags().StringVar(&ciphertext, "ciphertext", "", "ciphertext integer (decimal)")
	_ = cmd.MarkFlagRequired("ciphertext")
	return cmd
}

// engineFromFlags rebuilds the key from explicit primes and exponent.
// Encryption needs a reproducible key, so a random exponent is refused.
func engineFromFlags(cmd *cobra.Command, opts *rootOptions, keys *keyFlags) (*engine.Engine, error) {
	if keys.e == "" {
		return nil, errors.New("--e is required")
	}
	s, err := opts.session(cmd)
	if err != nil {
		return nil, err
	}
	kp, err := keys.build(cmd, s, 0)
	if err != nil {
		return nil, err
	}
	return engine.New(kp, s.backend)
}
