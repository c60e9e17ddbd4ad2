package main

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa"
)

func (a *app) demoCmd() *cobra.Command {
	var (
		bits    int
		message string
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "generate a key pair and round-trip a message",
		Long:  "generate a key pair, print both keys, then encrypt and decrypt a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, priv, err := a.keyGenerator().Generate(cmd.Context(), a.bits(bits))
			if err != nil {
				return errors.Wrap(err, "generate keys")
			}
			defer priv.Zeroize()

			fmt.Fprintln(a.out, "Public key:", pub)
			fmt.Fprintf(a.out, "Private key: (%s, %s)\n", priv.D(), priv.N())
			fmt.Fprintln(a.out, "Original message:", message)

			ct, err := cbrsa.Encrypt(pub, message)
			if err != nil {
				return errors.Wrap(err, "encrypt")
			}
			fmt.Fprintf(a.out, "Encrypted message: [%s]\n", formatCiphertext(ct, ", "))

			pt, err := cbrsa.Decrypt(priv, ct)
			if err != nil {
				return errors.Wrap(err, "decrypt")
			}
			fmt.Fprintln(a.out, "Decrypted message:", pt)
			return nil
		},
	}
	addBitsFlag(cmd.Flags(), &bits)
	cmd.Flags().StringVarP(&message, "message", "m", "Hello", "message to round-trip")
	return cmd
}

func (a *app) keygenCmd() *cobra.Command {
	var (
		bits      int
		out       string
		publicOut string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "generate a key pair",
		Long:  "generate a key pair and write it as toml, to --out or to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, priv, err := a.keyGenerator().Generate(cmd.Context(), a.bits(bits))
			if err != nil {
				return errors.Wrap(err, "generate keys")
			}
			defer priv.Zeroize()

			if publicOut != "" {
				if err := writeKeyFile(publicOut, newKeyFile(pub, nil)); err != nil {
					return err
				}
			}

			kf := newKeyFile(pub, priv)
			if out == "" {
				b, err := marshalKeyFile(kf)
				if err != nil {
					return err
				}
				defer cbrsa.ZeroizeBytes(b)
				_, err = a.out.Write(b)
				return err
			}
			if err := writeKeyFile(out, kf); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote key pair to %s\n", out)
			return nil
		},
	}
	addBitsFlag(cmd.Flags(), &bits)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the key pair to this file")
	cmd.Flags().StringVar(&publicOut, "public-out", "", "also write the public key alone to this file")
	return cmd
}

func (a *app) encryptCmd() *cobra.Command {
	var (
		keys    string
		message string
	)
	cmd := &cobra.Command{
		Use:   "encrypt [message]",
		Short: "encrypt a message with a public key",
		Long:  "encrypt a message with the public key of a key file and print one integer per code point",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				message = args[0]
			}
			pub, err := loadPublicKey(keys)
			if err != nil {
				return err
			}
			ct, err := cbrsa.Encrypt(pub, message)
			if err != nil {
				return errors.Wrap(err, "encrypt")
			}
			fmt.Fprintln(a.out, formatCiphertext(ct, " "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&keys, "keys", "k", "", "key file")
	cmd.Flags().StringVarP(&message, "message", "m", "", "message to encrypt")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

func (a *app) decryptCmd() *cobra.Command {
	var (
		keys       string
		ciphertext string
	)
	cmd := &cobra.Command{
		Use:   "decrypt [integers...]",
		Short: "decrypt a ciphertext with a private key",
		Long:  "decrypt decimal integers separated by spaces or commas with the private key of a key file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ciphertext = strings.Join(args, " ")
			}
			ct, err := parseCiphertext(ciphertext)
			if err != nil {
				return err
			}
			priv, err := loadPrivateKey(keys)
			if err != nil {
				return err
			}
			defer priv.Zeroize()

			pt, err := cbrsa.Decrypt(priv, ct)
			if err != nil {
				return errors.Wrap(err, "decrypt")
			}
			fmt.Fprintln(a.out, pt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keys, "keys", "k", "", "key file")
	cmd.Flags().StringVar(&ciphertext, "ciphertext", "", "ciphertext integers")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

func (a *app) dumpConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dumpconfig [config_file]",
		Short: "dump the default config to a toml file or to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := getDefaultConfigCopy()
			if len(args) == 1 {
				return writeConfigToFile(config, args[0])
			}
			b, err := marshalConfig(config)
			if err != nil {
				return err
			}
			_, err = a.out.Write(b)
			return err
		},
	}
}

func addBitsFlag(fs *pflag.FlagSet, bits *int) {
	fs.IntVar(bits, "bits", 0, "prime size in bits (default from config)")
}

func formatCiphertext(ct []*big.Int, sep string) string {
	parts := make([]string, len(ct))
	for i, c := range ct {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

func parseCiphertext(s string) ([]*big.Int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '[' || r == ']'
	})
	ct := make([]*big.Int, len(fields))
	for i, f := range fields {
		v, err := parseDecimal(fmt.Sprintf("ciphertext[%d]", i), f)
		if err != nil {
			return nil, err
		}
		ct[i] = v
	}
	return ct, nil
}
